package processing

import (
	"sync"
	"testing"
)

func TestAPICallTracker_ResetSession(t *testing.T) {
	tracker := NewAPICallTracker()

	tracker.RecordCall(EventSeasonFetch)
	tracker.RecordCall(EventCacheHit)
	tracker.RecordCall(EventCacheHit)

	stats := tracker.GetSessionStats()
	if stats.TotalEvents != 3 || stats.SessionEvents != 3 {
		t.Errorf("Expected 3 events before reset, got %+v", stats)
	}

	tracker.ResetSession()

	// Session counters reset, totals and breakdown remain for historical tracking
	stats = tracker.GetSessionStats()
	if stats.SessionEvents != 0 {
		t.Errorf("Expected 0 session events after reset, got %d", stats.SessionEvents)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("Expected total events preserved, got %d", stats.TotalEvents)
	}
	if stats.ByEvent[EventCacheHit] != 2 {
		t.Errorf("Expected breakdown preserved, got %v", stats.ByEvent)
	}
}

func TestAPICallTracker_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		events   []string
		expected float64
	}{
		{"no lookups", nil, 0},
		{"all fetched", []string{EventSeasonFetch, EventSeasonFetch}, 0},
		{"one in four fetched", []string{EventSeasonFetch, EventCacheHit, EventCacheHit, EventStaleServe}, 0.75},
		{"all cached", []string{EventCacheHit}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewAPICallTracker()
			for _, event := range tt.events {
				tracker.RecordCall(event)
			}
			if got := tracker.GetSessionStats().HitRate; got != tt.expected {
				t.Errorf("Expected hit rate %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAPICallTracker_StatsAreCopies(t *testing.T) {
	tracker := NewAPICallTracker()
	tracker.RecordCall(EventSeasonFetch)

	stats := tracker.GetSessionStats()
	stats.ByEvent[EventSeasonFetch] = 100

	if tracker.GetSessionStats().ByEvent[EventSeasonFetch] != 1 {
		t.Error("Expected returned breakdown to be a copy")
	}
}

func TestAPICallTracker_Concurrent(t *testing.T) {
	tracker := NewAPICallTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.RecordCall(EventCacheHit)
			}
		}()
	}
	wg.Wait()

	if total := tracker.GetSessionStats().TotalEvents; total != 1000 {
		t.Errorf("Expected 1000 events, got %d", total)
	}

	// Logging should not disturb the counters
	tracker.LogSessionSummary()
	if total := tracker.GetSessionStats().TotalEvents; total != 1000 {
		t.Errorf("Expected 1000 events after logging, got %d", total)
	}
}
