package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

func NewValidLimiter(r rate.Limit, b int) (*rate.Limiter, error) {
	if b <= 0 || r <= 0 {
		return nil, fmt.Errorf("bad rate limit config, insufficient tokens (rate=%f, b=%d)", r, b)
	}
	return rate.NewLimiter(r, b), nil
}

// ParseRateLimitSyntax parses a rate limit description into a limiter.
// sample inputs:
//
//	1+2/1s (a burst of 1, 2 tokens per second)
//	5+3/1m (a burst of 5, 3 tokens per minute)
//	3/1m   (3 tokens per minute)
//	500ms  (1 token every 500 milliseconds)
func ParseRateLimitSyntax(desc string) (*rate.Limiter, error) {
	burst := 1
	tokens := 1.0
	expr := strings.TrimSpace(desc)

	if b, rest, ok := strings.Cut(expr, "+"); ok {
		v, err := strconv.Atoi(b)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit burst %q: %w", b, err)
		}
		burst, expr = v, rest
	}

	durStr := expr
	if n, d, ok := strings.Cut(expr, "/"); ok {
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit tokens %q: %w", n, err)
		}
		tokens, durStr = v, d
	}

	duration, err := time.ParseDuration(durStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit syntax %q, expecting burst+n/duration: %w", desc, err)
	}

	if duration <= 0 || tokens <= 0 {
		return nil, fmt.Errorf("invalid rate limit %q: tokens and duration must be positive", desc)
	}

	return NewValidLimiter(rate.Every(time.Duration(float64(duration)/tokens)), burst)
}
