package utils

import (
	"testing"
	"time"
)

func TestLatencyTrackerPercentile(t *testing.T) {
	tracker := NewLatencyTracker(16)
	for i := 1; i <= 10; i++ {
		tracker.Observe(time.Duration(i) * time.Millisecond)
	}

	if got := tracker.Count(); got != 10 {
		t.Fatalf("expected 10 samples, got %d", got)
	}
	if p0 := tracker.Percentile(0); p0 != time.Millisecond {
		t.Fatalf("expected min 1ms, got %v", p0)
	}
	if p100 := tracker.Percentile(100); p100 != 10*time.Millisecond {
		t.Fatalf("expected max 10ms, got %v", p100)
	}
	if p50 := tracker.Percentile(50); p50 < time.Millisecond || p50 > 10*time.Millisecond {
		t.Fatalf("p50 out of range: %v", p50)
	}
}

func TestLatencyTrackerBounded(t *testing.T) {
	tracker := NewLatencyTracker(4)
	for i := 0; i < 10; i++ {
		tracker.Observe(time.Duration(i) * time.Millisecond)
	}
	if got := tracker.Count(); got != 4 {
		t.Fatalf("expected window of 4 samples, got %d", got)
	}
	// Oldest samples evicted, minimum should be from the tail of the stream.
	if min := tracker.Percentile(0); min != 6*time.Millisecond {
		t.Fatalf("expected oldest retained sample 6ms, got %v", min)
	}
}

func TestLatencyTrackerEmpty(t *testing.T) {
	tracker := NewLatencyTracker(0)
	if got := tracker.Percentile(95); got != 0 {
		t.Fatalf("expected zero percentile with no samples, got %v", got)
	}
}
