package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"hallwaymonitor/internal/hub"
	"hallwaymonitor/internal/logger"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatsWebsocketHandler registers dashboard clients with the hub; the
// hub pushes an occupancy snapshot after every processed frame.
func StatsWebsocketHandler(h *hub.Hub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		h.Register(connection)
		defer h.Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				logger.Info("Stats viewer disconnected: %v", err)
				break
			}
		}
	}
}
