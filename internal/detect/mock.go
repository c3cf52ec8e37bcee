package detect

import (
	"gocv.io/x/gocv"

	"hallwaymonitor/internal/monitor"
)

// Static replays a pre-scripted sequence of detection frames. It lets
// sessions and handlers run without a loaded network, and tests drive
// exact occupancy scenarios through it. After the script is exhausted it
// keeps returning empty frames.
type Static struct {
	frames [][]monitor.Detection
	next   int
}

// NewStatic builds a scripted detector; each element of frames is one
// frame's detections.
func NewStatic(frames [][]monitor.Detection) *Static {
	return &Static{frames: frames}
}

func (s *Static) DetectAndTrack(_ gocv.Mat) ([]monitor.Detection, error) {
	if s.next >= len(s.frames) {
		return nil, nil
	}
	dets := s.frames[s.next]
	s.next++
	return dets, nil
}

func (s *Static) Close() error { return nil }
