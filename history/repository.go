// Package history persists analysis results and share links in Postgres.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/content-audit/backend/analyzer"
)

// ErrNotFound is returned for missing or expired records.
var ErrNotFound = errors.New("record not found")

// Entry is one saved analysis row.
type Entry struct {
	ID                   int64     `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	URL                  string    `json:"url"`
	TargetKeyword        string    `json:"target_keyword"`
	WordCount            int       `json:"word_count"`
	OverallScore         float64   `json:"overall_score"`
	SEOScore             float64   `json:"seo_score"`
	SERPScore            float64   `json:"serp_score"`
	AEOScore             float64   `json:"aeo_score"`
	HumanizationScore    float64   `json:"humanization_score"`
	DifferentiationScore float64   `json:"differentiation_score"`
}

// ProgressPoint is one step in score progression over time.
type ProgressPoint struct {
	Timestamp            time.Time `json:"timestamp"`
	OverallScore         float64   `json:"overall_score"`
	SEOScore             float64   `json:"seo_score"`
	SERPScore            float64   `json:"serp_score"`
	AEOScore             float64   `json:"aeo_score"`
	HumanizationScore    float64   `json:"humanization_score"`
	DifferentiationScore float64   `json:"differentiation_score"`
	TargetKeyword        string    `json:"target_keyword"`
	URL                  string    `json:"url"`
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type Statistics struct {
	TotalAnalyses int                `json:"total_analyses"`
	AvgScores     map[string]float64 `json:"avg_scores"`
	TopKeywords   []KeywordCount     `json:"top_keywords"`
}

// ShareLink is a time-limited public handle to a saved result.
type ShareLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS analysis_history (
	id BIGSERIAL PRIMARY KEY,
	timestamp TIMESTAMPTZ NOT NULL,
	url TEXT,
	target_keyword TEXT,
	word_count INTEGER,
	overall_score DOUBLE PRECISION,
	seo_score DOUBLE PRECISION,
	serp_score DOUBLE PRECISION,
	aeo_score DOUBLE PRECISION,
	humanization_score DOUBLE PRECISION,
	differentiation_score DOUBLE PRECISION,
	full_results JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_history_created_at ON analysis_history(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_history_keyword ON analysis_history(target_keyword);

CREATE TABLE IF NOT EXISTS share_links (
	token TEXT PRIMARY KEY,
	analysis_id BIGINT NOT NULL REFERENCES analysis_history(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL,
	view_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_share_links_expires ON share_links(expires_at);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Save stores one audit result and returns its row id.
func (r *Repository) Save(ctx context.Context, result *analyzer.AuditResult) (int64, error) {
	full, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal results: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
INSERT INTO analysis_history (
	timestamp, url, target_keyword, word_count,
	overall_score, seo_score, serp_score, aeo_score,
	humanization_score, differentiation_score, full_results
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
RETURNING id
`,
		time.Now(), result.URL, result.TargetKeyword, result.WordCount,
		result.OverallScore, float64(result.SEO.Score), float64(result.SERPPerformance.Score),
		float64(result.AEO.Score), float64(result.Humanization.Score),
		float64(result.Differentiation.Score), full,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// List returns recent entries, optionally filtered by keyword or URL substring.
func (r *Repository) List(ctx context.Context, limit int, keyword, url string) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, timestamp, COALESCE(url, ''), COALESCE(target_keyword, ''), word_count,
	overall_score, seo_score, serp_score, aeo_score, humanization_score, differentiation_score
FROM analysis_history
WHERE ($2 = '' OR target_keyword ILIKE '%' || $2 || '%')
  AND ($3 = '' OR url ILIKE '%' || $3 || '%')
ORDER BY created_at DESC
LIMIT $1
`, limit, keyword, url)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.URL, &e.TargetKeyword, &e.WordCount,
			&e.OverallScore, &e.SEOScore, &e.SERPScore, &e.AEOScore,
			&e.HumanizationScore, &e.DifferentiationScore,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Progress returns score progression within the last N days, oldest first.
func (r *Repository) Progress(ctx context.Context, days int, keyword, url string) ([]ProgressPoint, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT timestamp, overall_score, seo_score, serp_score, aeo_score,
	humanization_score, differentiation_score,
	COALESCE(target_keyword, ''), COALESCE(url, '')
FROM analysis_history
WHERE created_at >= now() - make_interval(days => $1)
  AND ($2 = '' OR target_keyword ILIKE '%' || $2 || '%')
  AND ($3 = '' OR url ILIKE '%' || $3 || '%')
ORDER BY created_at ASC
`, days, keyword, url)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	points := []ProgressPoint{}
	for rows.Next() {
		var p ProgressPoint
		if err := rows.Scan(
			&p.Timestamp, &p.OverallScore, &p.SEOScore, &p.SERPScore, &p.AEOScore,
			&p.HumanizationScore, &p.DifferentiationScore, &p.TargetKeyword, &p.URL,
		); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Stats aggregates analysis counts, average scores, and top keywords.
func (r *Repository) Stats(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{AvgScores: map[string]float64{}}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_history`).Scan(&stats.TotalAnalyses); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	var overall, seo, serp, aeo, human, diff sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT AVG(overall_score), AVG(seo_score), AVG(serp_score),
	AVG(aeo_score), AVG(humanization_score), AVG(differentiation_score)
FROM analysis_history
`).Scan(&overall, &seo, &serp, &aeo, &human, &diff)
	if err != nil {
		return nil, fmt.Errorf("average scores: %w", err)
	}
	stats.AvgScores["overall"] = round1(overall.Float64)
	stats.AvgScores["seo"] = round1(seo.Float64)
	stats.AvgScores["serp"] = round1(serp.Float64)
	stats.AvgScores["aeo"] = round1(aeo.Float64)
	stats.AvgScores["humanization"] = round1(human.Float64)
	stats.AvgScores["differentiation"] = round1(diff.Float64)

	rows, err := r.db.QueryContext(ctx, `
SELECT target_keyword, COUNT(*) AS count
FROM analysis_history
WHERE target_keyword IS NOT NULL AND target_keyword != ''
GROUP BY target_keyword
ORDER BY count DESC
LIMIT 5
`)
	if err != nil {
		return nil, fmt.Errorf("top keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan keyword row: %w", err)
		}
		stats.TopKeywords = append(stats.TopKeywords, kc)
	}
	return stats, rows.Err()
}

// CreateShareLink issues a token for an existing analysis.
func (r *Repository) CreateShareLink(ctx context.Context, analysisID int64, ttl time.Duration) (*ShareLink, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(ttl)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO share_links (token, analysis_id, expires_at) VALUES ($1, $2, $3)
`, token, analysisID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("insert share link: %w", err)
	}

	return &ShareLink{
		Token:     token,
		URL:       "/share/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// ResolveShareLink returns the stored full results for an unexpired token,
// incrementing its view count.
func (r *Repository) ResolveShareLink(ctx context.Context, token string) (json.RawMessage, error) {
	var full []byte
	err := r.db.QueryRowContext(ctx, `
UPDATE share_links s
SET view_count = view_count + 1
FROM analysis_history h
WHERE s.token = $1 AND s.expires_at > now() AND h.id = s.analysis_id
RETURNING h.full_results
`, token).Scan(&full)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve share link: %w", err)
	}
	return json.RawMessage(full), nil
}

// DeleteExpiredShareLinks removes stale tokens, returning how many were dropped.
func (r *Repository) DeleteExpiredShareLinks(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired links: %w", err)
	}
	return res.RowsAffected()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
