package models

import "time"

// LoadRecord logs one dataset load for the operational store
type LoadRecord struct {
	ID           string    `json:"id" db:"id"`
	Source       string    `json:"source" db:"source"` // file, http, s3, postgres
	Version      string    `json:"version" db:"version"`
	Batches      int       `json:"batches" db:"batches"`
	Observations int       `json:"observations" db:"observations"`
	LoadedAt     time.Time `json:"loaded_at" db:"loaded_at"`
}
