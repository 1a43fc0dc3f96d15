package analyzer

// Weight vectors for the overall score. Each sums to 1.0.
var (
	// core order: SEO, SERP, AEO, Humanization, Differentiation
	coreWeights = []float64{0.25, 0.25, 0.15, 0.15, 0.20}

	// extended order: core five plus Sentiment, Entity, Freshness, Originality
	extendedWeights = []float64{0.20, 0.20, 0.12, 0.12, 0.16, 0.05, 0.05, 0.05, 0.05}
)

// OverallScore computes the weighted average of component scores, rounded
// to one decimal. The score count selects the weight vector; any other
// count falls back to a plain average.
func OverallScore(scores []int) float64 {
	var weights []float64
	switch len(scores) {
	case len(coreWeights):
		weights = coreWeights
	case len(extendedWeights):
		weights = extendedWeights
	default:
		if len(scores) == 0 {
			return 0
		}
		sum := 0
		for _, s := range scores {
			sum += s
		}
		return round1(float64(sum) / float64(len(scores)))
	}

	weighted := 0.0
	for i, s := range scores {
		weighted += float64(s) * weights[i]
	}
	return round1(weighted)
}
