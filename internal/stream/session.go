package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gocv.io/x/gocv"

	"hallwaymonitor/internal/detect"
	"hallwaymonitor/internal/hub"
	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/models"
	"hallwaymonitor/internal/monitor"
	"hallwaymonitor/internal/overlay"
	"hallwaymonitor/internal/repository"
	"hallwaymonitor/internal/settings"
)

// statsMessage is the JSON payload broadcast to dashboard websockets
// after every processed frame.
type statsMessage struct {
	Source string `json:"source"`
	monitor.Snapshot
	FPS float64 `json:"fps"`
}

// Session runs the full pipeline for one stream: read a frame, detect
// and track, update zone occupancy, render the overlay and push the JPEG
// to the MJPEG writer. Every session gets its own tracker and stats so
// concurrent streams never share counters.
//
// The pipeline is strictly sequential; the only waiting happens in the
// source read.
type Session struct {
	detector detect.DetectorTracker
	settings *settings.Store
	hub      *hub.Hub
	sessions repository.SessionRepository
	logger   *logger.Logger

	// title names the session in the activity log; sessions with an
	// empty title (the live camera) are not logged.
	title string
}

// NewSession wires a session from its collaborators. hub and sessions
// may be nil when broadcasting or logging is not wanted.
func NewSession(detector detect.DetectorTracker, store *settings.Store, h *hub.Hub, sessions repository.SessionRepository, logger *logger.Logger, title string) *Session {
	return &Session{
		detector: detector,
		settings: store,
		hub:      h,
		sessions: sessions,
		logger:   logger,
		title:    title,
	}
}

const framePartHeader = "--frame\r\nContent-Type: image/jpeg\r\n\r\n"

// Run processes the source until it is exhausted or the writer fails,
// writing multipart MJPEG parts to w. The caller owns the source and the
// detector; Run closes neither.
func (s *Session) Run(src Source, w io.Writer) error {
	img := gocv.NewMat()
	defer img.Close()

	var (
		tracker *monitor.Tracker
		snap    monitor.Snapshot
	)
	stats := monitor.NewStats()

	for src.Read(&img) {
		if img.Empty() {
			continue
		}

		vals := s.settings.Get()

		// The zone is sized from the first frame's dimensions; later
		// fraction changes apply to the next stream, threshold changes
		// to the next frame.
		if tracker == nil {
			zone := monitor.FromFraction(vals.ZoneFraction, img.Cols(), img.Rows())
			tracker = monitor.NewTracker(zone)
			s.logger.Info("Stream started: zone %v, threshold %d", zone.Rect(), vals.AlertThreshold)
		}

		dets, err := s.detector.DetectAndTrack(img)
		if err != nil {
			s.logger.Warning("Detection failed, treating frame as empty: %v", err)
			dets = nil
		}

		snap = tracker.ProcessFrame(dets, vals.AlertThreshold)

		now := time.Now()
		stats.Record(snap.Occupancy, now)
		if snap.Alert {
			stats.RecordAlert()
		}

		if err := overlay.Render(&img, tracker.Zone(), dets, snap, stats.Snapshot(), now); err != nil {
			s.logger.Warning("Overlay rendering failed: %v", err)
		}

		if err := s.writeFrame(w, img); err != nil {
			// The viewer went away; not an error worth surfacing.
			s.logger.Info("Stream viewer disconnected: %v", err)
			break
		}

		s.broadcastStats(snap, stats.Snapshot())
	}

	s.logSession(snap)
	return nil
}

func (s *Session) writeFrame(w io.Writer, img gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", img)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %v", err)
	}
	defer buf.Close()

	if _, err := io.WriteString(w, framePartHeader); err != nil {
		return err
	}
	if _, err := w.Write(buf.GetBytes()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}

	if f, ok := w.(interface{ Flush() }); ok {
		f.Flush()
	}
	return nil
}

func (s *Session) broadcastStats(snap monitor.Snapshot, stats monitor.StatsSnapshot) {
	if s.hub == nil {
		return
	}

	msg := statsMessage{
		Source:   s.title,
		Snapshot: snap,
		FPS:      stats.FPS,
	}
	if msg.Source == "" {
		msg.Source = "live"
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to marshal stats: %v", err)
		return
	}
	s.hub.Broadcast(payload)
}

func (s *Session) logSession(snap monitor.Snapshot) {
	if s.sessions == nil || s.title == "" || snap.Frames == 0 {
		return
	}

	if _, err := s.sessions.Insert(&models.SessionLog{
		Title:     s.title,
		ExitCount: snap.Exits,
		CreatedAt: time.Now(),
	}); err != nil {
		s.logger.Error("Failed to log session %s: %v", s.title, err)
		return
	}
	s.logger.Info("Session %s finished: %d frames, %d exits", s.title, snap.Frames, snap.Exits)
}
