package detect

import (
	"gocv.io/x/gocv"

	"hallwaymonitor/internal/monitor"
)

// DetectorTracker produces tracked detections for consecutive frames of a
// single stream. Track IDs are stable while the same object stays matched
// and are never reused after a track is dropped.
//
// Implementations are not safe for concurrent use; each stream session
// owns its own instance and calls it sequentially.
type DetectorTracker interface {
	// DetectAndTrack runs detection on one frame and returns the tracked
	// results. An empty slice is a normal "nobody visible" frame, not an
	// error.
	DetectAndTrack(frame gocv.Mat) ([]monitor.Detection, error)

	Close() error
}
