package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"feat/internal/domain"
)

var (
	bucketRuns  = []byte("runs")
	bucketStats = []byte("stats")
)

// BoltStore is the sync history log kept in .feat/history.db.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketStats); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketStats, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// recordKey orders records by time, then run, then feature. The timestamp
// is fixed width so byte order matches chronological order.
func recordKey(rec domain.SyncRecord) []byte {
	return []byte(fmt.Sprintf("%020d/%s/%s", rec.At.UTC().UnixNano(), rec.RunID, rec.Feature))
}

func (s *BoltStore) Record(rec domain.SyncRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(recordKey(rec), data)
	})
}

func (s *BoltStore) List(feature string, limit int) ([]domain.SyncRecord, error) {
	var records []domain.SyncRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec domain.SyncRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode record %s: %w", k, err)
			}
			if feature != "" && rec.Feature != feature {
				continue
			}
			records = append(records, rec)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	return records, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
