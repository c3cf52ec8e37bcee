package handlers

import (
	"net/http"

	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/models"
	"hallwaymonitor/internal/repository"
)

// GetSessionsHandler returns the logged sessions as JSON, newest first.
func GetSessionsHandler(sessions repository.SessionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := sessions.GetAll()
		if err != nil {
			logger.Error("Failed to load sessions: %v", err)
			http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
			return
		}
		if logs == nil {
			logs = []models.SessionLog{}
		}

		writeJSON(w, logs)
	}
}

// ClearSessionsHandler deletes every logged session.
func ClearSessionsHandler(sessions repository.SessionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := sessions.DeleteAll(); err != nil {
			logger.Error("Failed to clear sessions: %v", err)
			http.Error(w, "Failed to clear sessions", http.StatusInternalServerError)
			return
		}

		logger.Info("Session log cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
