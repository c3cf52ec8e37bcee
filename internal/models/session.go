package models

import "time"

// SessionLog is one completed monitoring session: an uploaded video that
// was processed to its end, with the exit count the run produced.
type SessionLog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ExitCount int       `json:"exitCount"`
	CreatedAt time.Time `json:"createdAt"`
}
