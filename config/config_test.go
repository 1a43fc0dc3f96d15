package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("Port = %q, want 8082", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.GinMode)
	}
	if !cfg.HistoryEnabled {
		t.Error("HistoryEnabled should default to true")
	}
	if cfg.CompetitorLimit != 10 {
		t.Errorf("CompetitorLimit = %d, want 10", cfg.CompetitorLimit)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v, want 15s", cfg.FetchTimeout)
	}
	if cfg.ShareLinkTTL != 7*24*time.Hour {
		t.Errorf("ShareLinkTTL = %v, want 168h", cfg.ShareLinkTTL)
	}
	if cfg.LLMAPIKey != "" {
		t.Errorf("LLMAPIKey should default empty, got %q", cfg.LLMAPIKey)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("OUTBOUND_RATE", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "20")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.HistoryEnabled {
		t.Error("HistoryEnabled should be false")
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.OutboundRate != 0.5 {
		t.Errorf("OutboundRate = %v, want 0.5", cfg.OutboundRate)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("RateLimitBurst = %d, want 20", cfg.RateLimitBurst)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("COMPETITOR_LIMIT", "not-a-number")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("HISTORY_ENABLED", "maybe")

	cfg := Load()

	if cfg.CompetitorLimit != 10 {
		t.Errorf("CompetitorLimit = %d, want fallback 10", cfg.CompetitorLimit)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v, want fallback 15s", cfg.FetchTimeout)
	}
	if !cfg.HistoryEnabled {
		t.Error("HistoryEnabled should fall back to true")
	}
}
