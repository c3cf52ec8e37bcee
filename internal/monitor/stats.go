package monitor

import "time"

// HistoryCapacity bounds the rolling occupancy history; the oldest value
// is evicted once the limit is reached.
const HistoryCapacity = 100

// Stats aggregates per-session display statistics: a bounded rolling
// history of occupancy values, frame and alert tallies, and a smoothed
// frames-per-second estimate refreshed once per second. Like the
// Tracker, a Stats instance belongs to exactly one stream.
type Stats struct {
	history      []int
	frames       int
	alerts       int
	windowStart  time.Time
	windowFrames int
	fps          float64
}

// StatsSnapshot is a read-only copy of the aggregator state for
// rendering and logging collaborators.
type StatsSnapshot struct {
	History []int   `json:"history"`
	FPS     float64 `json:"fps"`
	Frames  int     `json:"frames"`
	Alerts  int     `json:"alerts"`
}

// NewStats creates an empty aggregator.
func NewStats() *Stats {
	return &Stats{
		history: make([]int, 0, HistoryCapacity),
	}
}

// Record appends one frame's occupancy to the rolling history and feeds
// the FPS estimator. The caller supplies the clock so throughput is a
// function of when frames actually arrived.
//
// The estimate refreshes once the measurement window spans at least one
// second, which smooths out single-frame timing jitter instead of
// reporting a noisy instantaneous value.
func (s *Stats) Record(occupancy int, now time.Time) {
	s.history = append(s.history, occupancy)
	if len(s.history) > HistoryCapacity {
		s.history = s.history[1:]
	}
	s.frames++

	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	s.windowFrames++

	if elapsed := now.Sub(s.windowStart); elapsed >= time.Second {
		s.fps = float64(s.windowFrames) / elapsed.Seconds()
		s.windowFrames = 0
		s.windowStart = now
	}
}

// RecordAlert tallies one alert frame.
func (s *Stats) RecordAlert() {
	s.alerts++
}

// Snapshot returns a copy of the current statistics; it never mutates
// the aggregator.
func (s *Stats) Snapshot() StatsSnapshot {
	history := make([]int, len(s.history))
	copy(history, s.history)

	return StatsSnapshot{
		History: history,
		FPS:     s.fps,
		Frames:  s.frames,
		Alerts:  s.alerts,
	}
}

// Reset clears the history, counters and FPS window.
func (s *Stats) Reset() {
	s.history = s.history[:0]
	s.frames = 0
	s.alerts = 0
	s.windowStart = time.Time{}
	s.windowFrames = 0
	s.fps = 0
}
