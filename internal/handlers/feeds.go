package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"hallwaymonitor/internal/detect"
	"hallwaymonitor/internal/hub"
	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/repository"
	"hallwaymonitor/internal/settings"
	"hallwaymonitor/internal/stream"
)

// DetectorFactory builds a fresh detector/tracker for one stream
// session. Each session needs its own instance because track state is
// per-stream.
type DetectorFactory func() (detect.DetectorTracker, error)

const mjpegContentType = "multipart/x-mixed-replace; boundary=frame"

// LiveFeedHandler streams the camera as MJPEG, one session per request.
func LiveFeedHandler(newDetector DetectorFactory, store *settings.Store, h *hub.Hub, logger *logger.Logger, device int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detector, err := newDetector()
		if err != nil {
			logger.Error("Failed to create detector: %v", err)
			http.Error(w, "Detector unavailable", http.StatusInternalServerError)
			return
		}
		defer detector.Close()

		src, err := stream.OpenCamera(device)
		if err != nil {
			logger.Error("Failed to open camera: %v", err)
			http.Error(w, "Camera unavailable", http.StatusInternalServerError)
			return
		}
		defer src.Close()

		w.Header().Set("Content-Type", mjpegContentType)
		w.Header().Set("Cache-Control", "no-cache")

		session := stream.NewSession(detector, store, h, nil, logger, "")
		if err := session.Run(src, w); err != nil {
			logger.Error("Live stream failed: %v", err)
		}
	}
}

// UploadFeedHandler streams a previously uploaded video as MJPEG and
// records the finished session in the activity log.
func UploadFeedHandler(newDetector DetectorFactory, store *settings.Store, h *hub.Hub, sessions repository.SessionRepository, logger *logger.Logger, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		// Reject anything that is not a bare filename in the uploads
		// directory.
		if file == "" || file != filepath.Base(file) {
			http.Error(w, "Invalid file name", http.StatusBadRequest)
			return
		}

		path := filepath.Join(uploadDir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.Error(w, "Video not found: "+file, http.StatusNotFound)
			return
		}

		detector, err := newDetector()
		if err != nil {
			logger.Error("Failed to create detector: %v", err)
			http.Error(w, "Detector unavailable", http.StatusInternalServerError)
			return
		}
		defer detector.Close()

		src, err := stream.OpenFile(path)
		if err != nil {
			logger.Error("Failed to open video %s: %v", file, err)
			http.Error(w, "Failed to open video", http.StatusInternalServerError)
			return
		}
		defer src.Close()

		w.Header().Set("Content-Type", mjpegContentType)
		w.Header().Set("Cache-Control", "no-cache")

		session := stream.NewSession(detector, store, h, sessions, logger, file)
		if err := session.Run(src, w); err != nil {
			logger.Error("Upload stream failed: %v", err)
		}
	}
}
