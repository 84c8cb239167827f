package memstore

import (
	"sort"
	"time"

	"feat/internal/domain"
)

// MemoryStore keeps sync history in process memory.
type MemoryStore struct {
	records []domain.SyncRecord
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(rec domain.SyncRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) List(feature string, limit int) ([]domain.SyncRecord, error) {
	out := make([]domain.SyncRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if feature == "" || rec.Feature == feature {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *MemoryStore) Closed() bool {
	return s.closed
}
