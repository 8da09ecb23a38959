package config

import (
	"net/http"
	"time"
)

// Retry configuration constants.
// Reads from the data server and writes to the standings sheet are retried;
// sheet reads and SSH uploads are not.
const (
	// Standings API request retry configuration
	APIRequestMaxAttempts       = 3
	APIRequestInitialWait       = 1 * time.Second
	APIRequestMaxWait           = 10 * time.Second
	APIRequestBackoffMultiplier = 2.0
	APIRequestTimeout           = 30 * time.Second

	// Standings sheet write retry configuration
	SheetWriteMaxAttempts       = 3
	SheetWriteInitialWait       = 1 * time.Second
	SheetWriteMaxWait           = 10 * time.Second
	SheetWriteBackoffMultiplier = 2.0
	SheetWriteTimeout           = 30 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Timeout     time.Duration
}

// Backoff returns the wait before the given retry attempt (1-based), capped at MaxWait
func (r RetryConfig) Backoff(attempt int) time.Duration {
	wait := r.InitialWait
	for i := 1; i < attempt; i++ {
		wait = time.Duration(float64(wait) * r.Multiplier)
		if wait >= r.MaxWait {
			return r.MaxWait
		}
	}
	return min(wait, r.MaxWait)
}

// RetryableStatus reports whether an HTTP status is a rate limit or server failure
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Attempts returns MaxAttempts, treating anything below one as a single attempt
func (r RetryConfig) Attempts() int {
	return max(r.MaxAttempts, 1)
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	APIRequest RetryConfig
	SheetWrite RetryConfig
}

// DefaultResilienceConfig is used by nba.NewClient and sheets.NewClient
var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: RetryConfig{
		MaxAttempts: APIRequestMaxAttempts,
		InitialWait: APIRequestInitialWait,
		MaxWait:     APIRequestMaxWait,
		Multiplier:  APIRequestBackoffMultiplier,
		Timeout:     APIRequestTimeout,
	},
	SheetWrite: RetryConfig{
		MaxAttempts: SheetWriteMaxAttempts,
		InitialWait: SheetWriteInitialWait,
		MaxWait:     SheetWriteMaxWait,
		Multiplier:  SheetWriteBackoffMultiplier,
		Timeout:     SheetWriteTimeout,
	},
}
