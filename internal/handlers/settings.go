package handlers

import (
	"encoding/json"
	"net/http"

	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/settings"
)

// SettingsHandler reads and updates the shared monitoring settings.
// Updates apply to running streams from their next frame; the zone size
// applies when the next stream starts.
func SettingsHandler(store *settings.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, store.Get())

		case http.MethodPost:
			var vals settings.Values
			if err := json.NewDecoder(r.Body).Decode(&vals); err != nil {
				http.Error(w, "Invalid settings payload", http.StatusBadRequest)
				return
			}

			stored := store.Update(vals)
			logger.Info("Settings updated: zone fraction %.2f, alert threshold %d",
				stored.ZoneFraction, stored.AlertThreshold)
			writeJSON(w, stored)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
