// Package store persists appointment mutations through a remote API with an
// automatic local fallback mirror, keeping both convergent: a successful
// remote operation always overwrites the corresponding local entry, and a
// remote failure degrades to the mirror without surfacing an error.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinic-agenda-server/internal/models"
)

// ServerStatus is the remote connectivity indicator surfaced to the UI.
type ServerStatus string

const (
	StatusConnected    ServerStatus = "connected"
	StatusChecking     ServerStatus = "checking"
	StatusDisconnected ServerStatus = "disconnected"
)

// ErrInvalidSnapshot is returned by ImportSnapshot for documents missing the
// citas collection or otherwise malformed; nothing is applied in that case.
var ErrInvalidSnapshot = errors.New("snapshot document is missing the citas collection")

// DefaultDuration is the appointment length applied when a draft has no
// explicit end time.
const DefaultDuration = 30 * time.Minute

// Patch is a partial appointment update; nil fields are left untouched.
type Patch struct {
	Title           *string
	Start           *time.Time
	End             *time.Time
	Notes           *string
	DoctorID        *string
	PendingApproval *bool
}

// Options tunes a Store.
type Options struct {
	// DefaultDuration overrides DefaultDuration when positive.
	DefaultDuration time.Duration
	// OnChange is fired with a copy of the authoritative list after every
	// change (create/update/delete/import/load). May be nil.
	OnChange func([]models.Appointment)
	// Now is injectable for testing. May be nil.
	Now func() time.Time
}

// Store composes the remote repository with the local mirror. There is no
// merge strategy: whichever side succeeded last wins, and the mirror is
// overwritten on every successful remote read or write.
type Store struct {
	mu       sync.Mutex
	remote   RemoteRepository
	local    *LocalRepository
	status   ServerStatus
	duration time.Duration
	onChange func([]models.Appointment)
	now      func() time.Time
}

// New creates a Store over the given remote repository and local mirror.
func New(remote RemoteRepository, local *LocalRepository, opts Options) *Store {
	duration := opts.DefaultDuration
	if duration <= 0 {
		duration = DefaultDuration
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		remote:   remote,
		local:    local,
		status:   StatusChecking,
		duration: duration,
		onChange: opts.OnChange,
		now:      now,
	}
}

// Status returns the last observed remote connectivity.
func (s *Store) Status() ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CheckStatus probes the remote health endpoint and updates the indicator.
func (s *Store) CheckStatus(ctx context.Context) ServerStatus {
	s.mu.Lock()
	s.status = StatusChecking
	s.mu.Unlock()

	err := s.remote.Ping(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusDisconnected
	} else {
		s.status = StatusConnected
	}
	return s.status
}

// List fetches the collection from the remote API, refreshing the mirror on
// success. On remote failure it returns the mirror snapshot without raising;
// the failure is only visible through Status.
func (s *Store) List(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	s.status = StatusChecking
	s.mu.Unlock()

	citas, err := s.remote.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusDisconnected
		return s.local.Load()
	}
	s.status = StatusConnected
	if err := s.local.Save(citas); err != nil {
		return nil, err
	}
	s.fireChangeLocked(citas)
	return citas, nil
}

// Create persists a new appointment. On remote success the remote-assigned
// appointment is appended to the mirror; on remote failure a local-only
// appointment is synthesized with a generated id and the default duration.
func (s *Store) Create(ctx context.Context, draft models.Appointment) (models.Appointment, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.End.IsZero() || !draft.End.After(draft.Start) {
		draft.End = draft.Start.Add(s.duration)
	}
	draft.CreatedAt = s.now()

	created, err := s.remote.Create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusDisconnected
		created = draft
		created.ID = uuid.New().String()
	} else {
		s.status = StatusConnected
		if created.ID == "" {
			created.ID = uuid.New().String()
		}
	}

	citas, loadErr := s.local.Load()
	if loadErr != nil {
		return models.Appointment{}, loadErr
	}
	citas = upsert(citas, created)
	if saveErr := s.local.Save(citas); saveErr != nil {
		return models.Appointment{}, saveErr
	}
	s.fireChangeLocked(citas)
	return created, nil
}

// Update applies a partial patch to the appointment with the given id. It
// reports whether the entry existed; patching an unknown id leaves the
// collection untouched. A remote failure degrades to a mirror-only patch.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (bool, error) {
	s.mu.Lock()
	citas, err := s.local.Load()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	i := indexOf(citas, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	updated := applyPatch(citas[i], patch)
	s.mu.Unlock()

	remoteErr := s.remote.Update(ctx, id, updated)

	s.mu.Lock()
	defer s.mu.Unlock()
	if remoteErr != nil {
		s.status = StatusDisconnected
	} else {
		s.status = StatusConnected
	}

	citas, err = s.local.Load()
	if err != nil {
		return false, err
	}
	citas = upsert(citas, updated)
	if err := s.local.Save(citas); err != nil {
		return false, err
	}
	s.fireChangeLocked(citas)
	return true, nil
}

// Remove deletes the appointment with the given id. Removing an unknown id
// returns false without error, so the operation is idempotent.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	citas, err := s.local.Load()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if indexOf(citas, id) < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	remoteErr := s.remote.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if remoteErr != nil {
		s.status = StatusDisconnected
	} else {
		s.status = StatusConnected
	}

	citas, err = s.local.Load()
	if err != nil {
		return false, err
	}
	kept := citas[:0]
	for _, cita := range citas {
		if cita.ID != id {
			kept = append(kept, cita)
		}
	}
	if err := s.local.Save(kept); err != nil {
		return false, err
	}
	s.fireChangeLocked(kept)
	return true, nil
}

// Move reschedules the appointment to newStart, preserving its original
// duration.
func (s *Store) Move(ctx context.Context, id string, newStart time.Time) (bool, error) {
	s.mu.Lock()
	citas, err := s.local.Load()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	i := indexOf(citas, id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	newEnd := newStart.Add(citas[i].Duration())
	s.mu.Unlock()

	return s.Update(ctx, id, Patch{Start: &newStart, End: &newEnd})
}

// Get returns the appointment with the given id from the mirror.
func (s *Store) Get(id string) (models.Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	citas, err := s.local.Load()
	if err != nil {
		return models.Appointment{}, false, err
	}
	i := indexOf(citas, id)
	if i < 0 {
		return models.Appointment{}, false, nil
	}
	return citas[i], true, nil
}

// ExportSnapshot serializes the full mirror into the portable document.
func (s *Store) ExportSnapshot() (SnapshotDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	citas, err := s.local.Load()
	if err != nil {
		return SnapshotDoc{}, err
	}
	if citas == nil {
		citas = []models.Appointment{}
	}
	return SnapshotDoc{Citas: citas}, nil
}

// ImportSnapshot validates and applies a previously exported document,
// replacing the local mirror and attempting a bulk replace upstream. A
// malformed document fails with ErrInvalidSnapshot and nothing is applied.
func (s *Store) ImportSnapshot(ctx context.Context, raw []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	rawCitas, ok := probe["citas"]
	if !ok {
		return ErrInvalidSnapshot
	}
	var citas []models.Appointment
	if err := json.Unmarshal(rawCitas, &citas); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	remoteErr := s.remote.Replace(ctx, citas)

	s.mu.Lock()
	defer s.mu.Unlock()
	if remoteErr != nil {
		s.status = StatusDisconnected
	} else {
		s.status = StatusConnected
	}
	if err := s.local.Save(citas); err != nil {
		return err
	}
	s.fireChangeLocked(citas)
	return nil
}

// Reset wipes the local mirror. Callers must confirmation-gate this.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.local.Reset(); err != nil {
		return err
	}
	s.fireChangeLocked(nil)
	return nil
}

// LastModified exposes the mirror's last write time.
func (s *Store) LastModified() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.LastModified()
}

func (s *Store) fireChangeLocked(citas []models.Appointment) {
	if s.onChange == nil {
		return
	}
	snapshot := make([]models.Appointment, len(citas))
	copy(snapshot, citas)
	s.onChange(snapshot)
}

func indexOf(citas []models.Appointment, id string) int {
	for i := range citas {
		if citas[i].ID == id {
			return i
		}
	}
	return -1
}

func upsert(citas []models.Appointment, cita models.Appointment) []models.Appointment {
	if i := indexOf(citas, cita.ID); i >= 0 {
		citas[i] = cita
		return citas
	}
	return append(citas, cita)
}

func applyPatch(cita models.Appointment, patch Patch) models.Appointment {
	if patch.Title != nil {
		cita.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Start != nil {
		cita.Start = *patch.Start
	}
	if patch.End != nil {
		cita.End = *patch.End
	}
	if patch.Notes != nil {
		cita.Notes = *patch.Notes
	}
	if patch.DoctorID != nil {
		cita.DoctorID = *patch.DoctorID
	}
	if patch.PendingApproval != nil {
		cita.PendingApproval = *patch.PendingApproval
	}
	return cita
}
