package port

import "feat/internal/domain"

// HistoryStore records the outcome of documentation updates.
type HistoryStore interface {
	Record(rec domain.SyncRecord) error

	// List returns records newest first. An empty feature lists all.
	List(feature string, limit int) ([]domain.SyncRecord, error)

	Close() error
}
