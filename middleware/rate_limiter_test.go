package middleware

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestLimiterSettingsDefaults(t *testing.T) {
	limit, burst := limiterSettings()
	if limit != rate.Limit(5) {
		t.Errorf("expected default rate 5, got %v", limit)
	}
	if burst != 30 {
		t.Errorf("expected default burst 30, got %d", burst)
	}
}

func TestLimiterSettingsFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	limit, burst := limiterSettings()
	if limit != rate.Limit(2.5) {
		t.Errorf("expected rate 2.5, got %v", limit)
	}
	if burst != 10 {
		t.Errorf("expected burst 10, got %d", burst)
	}
}

func TestLimiterSettingsIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("RATE_LIMIT_BURST", "-4")

	limit, burst := limiterSettings()
	if limit != rate.Limit(5) || burst != 30 {
		t.Errorf("invalid env must fall back to defaults, got %v/%d", limit, burst)
	}
}
