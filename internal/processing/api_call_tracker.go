package processing

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Tracked events
const (
	EventSeasonFetch = "season_fetch"
	EventCacheHit    = "cache_hit"
	EventStaleServe  = "stale_serve"
)

// APICallTracker counts standings API fetches and the cache hits that avoided them
type APICallTracker struct {
	sessionStart  time.Time
	sessionEvents int64
	totalEvents   int64
	byEvent       map[string]int64
	mutex         sync.RWMutex
}

// NewAPICallTracker creates a new API call tracker
func NewAPICallTracker() *APICallTracker {
	return &APICallTracker{
		sessionStart: time.Now(),
		byEvent:      make(map[string]int64),
	}
}

// RecordCall records one event
func (t *APICallTracker) RecordCall(event string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionEvents++
	t.totalEvents++
	t.byEvent[event]++
}

// GetSessionStats returns statistics for the current session
func (t *APICallTracker) GetSessionStats() APICallStats {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	byEvent := make(map[string]int64, len(t.byEvent))
	for k, v := range t.byEvent {
		byEvent[k] = v
	}

	stats := APICallStats{
		SessionEvents:   t.sessionEvents,
		TotalEvents:     t.totalEvents,
		SessionDuration: time.Since(t.sessionStart),
		ByEvent:         byEvent,
	}
	if lookups := byEvent[EventSeasonFetch] + byEvent[EventCacheHit] + byEvent[EventStaleServe]; lookups > 0 {
		stats.HitRate = float64(byEvent[EventCacheHit]+byEvent[EventStaleServe]) / float64(lookups)
	}
	return stats
}

// ResetSession resets session-specific counters.
// Totals and the per-event breakdown are kept.
func (t *APICallTracker) ResetSession() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionStart = time.Now()
	t.sessionEvents = 0
}

// LogSessionSummary logs a summary of API usage for the session
func (t *APICallTracker) LogSessionSummary() {
	stats := t.GetSessionStats()

	logEvent := log.Info().
		Int64("session_events", stats.SessionEvents).
		Int64("total_events", stats.TotalEvents).
		Float64("cache_hit_rate", stats.HitRate).
		Dur("session_duration", stats.SessionDuration)

	for event, count := range stats.ByEvent {
		logEvent = logEvent.Int64(event, count)
	}

	logEvent.Msg("API call session summary")
}

// APICallStats represents API call statistics
type APICallStats struct {
	SessionEvents   int64
	TotalEvents     int64
	SessionDuration time.Duration
	ByEvent         map[string]int64
	// HitRate is the share of season lookups answered without a fresh fetch
	HitRate float64
}
