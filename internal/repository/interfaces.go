package repository

import "hallwaymonitor/internal/models"

// SessionRepository defines the interface for session log operations.
type SessionRepository interface {
	// Create operations
	Insert(log *models.SessionLog) (int64, error)

	// Read operations
	GetAll() ([]models.SessionLog, error)

	// Delete operations
	DeleteAll() error
}
