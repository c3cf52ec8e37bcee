package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"hallwaymonitor/internal/config"
	"hallwaymonitor/internal/handlers"
	"hallwaymonitor/internal/hub"
	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/middleware"
	"hallwaymonitor/internal/repository"
	"hallwaymonitor/internal/settings"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers HTTP routes, static file serving, API endpoints,
// and wraps the mux with the authentication middleware.
func SetupRoutes(newDetector handlers.DetectorFactory, store *settings.Store, h *hub.Hub, sessions repository.SessionRepository, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Video feeds
	mux.HandleFunc("/api/feed/live", handlers.LiveFeedHandler(newDetector, store, h, logger, cfg.CameraDevice))
	mux.HandleFunc("/api/feed/upload", handlers.UploadFeedHandler(newDetector, store, h, sessions, logger, cfg.UploadDirectory))

	// Uploads
	mux.HandleFunc("/api/upload", handlers.UploadVideoHandler(cfg.UploadDirectory, logger))
	mux.HandleFunc("/api/uploads", handlers.ListUploadsHandler(cfg.UploadDirectory, logger))

	// Session log and settings
	mux.HandleFunc("/api/sessions", handlers.GetSessionsHandler(sessions, logger))
	mux.HandleFunc("/api/sessions/clear", handlers.ClearSessionsHandler(sessions, logger))
	mux.HandleFunc("/api/settings", handlers.SettingsHandler(store, logger))

	// Live statistics
	mux.HandleFunc("/api/stats", handlers.StatsWebsocketHandler(h, logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(logger))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping for example: /settings -> /static/settings.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.AuthMiddleware(mux)
}
