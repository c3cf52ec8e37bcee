package sqlite

import (
	"fmt"
	"time"

	"hallwaymonitor/internal/models"
)

// SessionRepository implements repository.SessionRepository for SQLite.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Insert adds a completed session record to the database.
func (r *SessionRepository) Insert(log *models.SessionLog) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := r.db.Conn().Exec(`
		INSERT INTO sessions (title, exit_count, created_at)
		VALUES (?, ?, ?)
	`, log.Title, log.ExitCount, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	return result.LastInsertId()
}

// GetAll retrieves every session log, newest first.
func (r *SessionRepository) GetAll() ([]models.SessionLog, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, title, exit_count, created_at
		FROM sessions ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var logs []models.SessionLog
	for rows.Next() {
		var log models.SessionLog
		if err := rows.Scan(&log.ID, &log.Title, &log.ExitCount, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// DeleteAll removes every session log.
func (r *SessionRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
