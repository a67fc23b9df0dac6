package store

import (
	"encoding/json"
	"fmt"
	"time"

	"clinic-agenda-server/internal/models"
)

// Well-known mirror keys.
const (
	mirrorKey          = "agenda.citas"
	mirrorTimestampKey = "agenda.citas.updatedAt"
)

// SnapshotDoc is the portable export document. Import rejects any document
// missing the citas collection.
type SnapshotDoc struct {
	Citas []models.Appointment `json:"citas"`
}

// LocalRepository is the durable local mirror of the appointment collection,
// used as the degraded source of truth while the remote API is unreachable.
type LocalRepository struct {
	kv KV
}

// NewLocalRepository creates a mirror over the given KV.
func NewLocalRepository(kv KV) *LocalRepository {
	return &LocalRepository{kv: kv}
}

// Load returns the mirrored collection. A missing mirror is an empty
// collection, not an error.
func (l *LocalRepository) Load() ([]models.Appointment, error) {
	raw, ok, err := l.kv.Get(mirrorKey)
	if err != nil {
		return nil, fmt.Errorf("load mirror: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var citas []models.Appointment
	if err := json.Unmarshal([]byte(raw), &citas); err != nil {
		return nil, fmt.Errorf("load mirror: %w", err)
	}
	return citas, nil
}

// Save overwrites the mirrored collection and stamps the companion
// last-modified key.
func (l *LocalRepository) Save(citas []models.Appointment) error {
	if citas == nil {
		citas = []models.Appointment{}
	}
	raw, err := json.Marshal(citas)
	if err != nil {
		return fmt.Errorf("save mirror: %w", err)
	}
	if err := l.kv.Set(mirrorKey, string(raw)); err != nil {
		return fmt.Errorf("save mirror: %w", err)
	}
	if err := l.kv.Set(mirrorTimestampKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save mirror timestamp: %w", err)
	}
	return nil
}

// LastModified returns the timestamp of the last mirror write, or ok=false if
// the mirror has never been written.
func (l *LocalRepository) LastModified() (time.Time, bool) {
	raw, ok, err := l.kv.Get(mirrorTimestampKey)
	if err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Reset removes the mirror and its timestamp.
func (l *LocalRepository) Reset() error {
	if err := l.kv.Delete(mirrorKey); err != nil {
		return fmt.Errorf("reset mirror: %w", err)
	}
	if err := l.kv.Delete(mirrorTimestampKey); err != nil {
		return fmt.Errorf("reset mirror timestamp: %w", err)
	}
	return nil
}
