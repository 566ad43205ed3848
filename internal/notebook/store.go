package notebook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/vocabengine/internal/spaced_repetition"
	"github.com/example/vocabengine/pkg/models"
)

// Sentinel errors for the notebook package. Check with errors.Is.
var (
	ErrNotFound  = errors.New("notebook: record not found")
	ErrDuplicate = errors.New("notebook: word already in notebook")
)

// Persister saves mastery records outside the process. Implemented
// by the database layer; a nil persister keeps the store purely
// in-memory (used in tests and ephemeral hosts).
type Persister interface {
	LoadRecords(userID int64) ([]models.MasteryRecord, error)
	SaveRecord(userID int64, rec models.MasteryRecord) error
	DeleteRecord(userID, wordID int64) error
	ClearRecords(userID int64) error
}

// Store holds one user's mastery records and enforces their
// invariants. Scheduling fields change only through ApplyReview,
// which routes every mutation through the spaced repetition
// transition; metadata changes go through UpdateMetadata, which can
// never touch scheduling fields.
//
// The store is safe for concurrent readers and provides atomic
// read-modify-write for reviews. Persistence calls happen after the
// in-memory mutation, outside the lock, and their errors propagate
// unchanged: retry policy belongs to the caller.
type Store struct {
	userID    int64
	persister Persister
	leitner   *spaced_repetition.Leitner

	mu      sync.RWMutex
	records map[int64]models.MasteryRecord
}

// NewStore creates an empty in-memory store for one user.
func NewStore(userID int64, persister Persister) *Store {
	return &Store{
		userID:    userID,
		persister: persister,
		leitner:   spaced_repetition.NewLeitner(),
		records:   make(map[int64]models.MasteryRecord),
	}
}

// Load creates a store populated from the persistence collaborator.
func Load(userID int64, persister Persister) (*Store, error) {
	s := NewStore(userID, persister)
	records, err := persister.LoadRecords(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mastery records: %w", err)
	}
	for _, rec := range records {
		s.records[rec.WordID] = rec
	}
	return s, nil
}

// Get returns the record for a word.
func (s *Store) Get(wordID int64) (models.MasteryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[wordID]
	if !ok {
		return models.MasteryRecord{}, ErrNotFound
	}
	return rec, nil
}

// All returns a snapshot of every record. The slice is owned by the
// caller; mutating it does not affect the store.
func (s *Store) All() []models.MasteryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.MasteryRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	return records
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Add creates the level-1 record for a newly collected word. The
// first review is scheduled immediately from level 1.
func (s *Store) Add(wordID int64, source string, now time.Time) (models.MasteryRecord, error) {
	s.mu.Lock()
	if _, exists := s.records[wordID]; exists {
		s.mu.Unlock()
		return models.MasteryRecord{}, ErrDuplicate
	}

	next := s.leitner.NextReviewAt(models.MinLevel, now)
	rec := models.MasteryRecord{
		UserID:     s.userID,
		WordID:     wordID,
		Level:      models.MinLevel,
		NextReview: &next,
		Source:     source,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.records[wordID] = rec
	s.mu.Unlock()

	return rec, s.persist(rec)
}

// Upsert stores a record as-is. Intended for rehydration and for
// hosts that manage records externally; normal review flow goes
// through ApplyReview.
func (s *Store) Upsert(rec models.MasteryRecord) error {
	s.mu.Lock()
	s.records[rec.WordID] = rec
	s.mu.Unlock()

	return s.persist(rec)
}

// ApplyReview grades one recall attempt: it runs the spaced
// repetition transition on the current record under the store lock
// and persists the result after releasing it.
func (s *Store) ApplyReview(wordID int64, successful bool, now time.Time) (models.MasteryRecord, error) {
	s.mu.Lock()
	rec, ok := s.records[wordID]
	if !ok {
		s.mu.Unlock()
		return models.MasteryRecord{}, ErrNotFound
	}

	rec = s.leitner.Transition(rec, successful, now)
	rec.UpdatedAt = now
	s.records[wordID] = rec
	s.mu.Unlock()

	return rec, s.persist(rec)
}

// MetadataUpdate carries the editable non-scheduling fields. Nil
// pointers leave the field untouched.
type MetadataUpdate struct {
	IsFavorite    *bool
	Notes         *string
	SourceDetails *string
}

// UpdateMetadata edits metadata fields only. Scheduling fields are
// structurally unreachable from here, so a metadata edit can never
// break the review schedule.
func (s *Store) UpdateMetadata(wordID int64, upd MetadataUpdate) (models.MasteryRecord, error) {
	s.mu.Lock()
	rec, ok := s.records[wordID]
	if !ok {
		s.mu.Unlock()
		return models.MasteryRecord{}, ErrNotFound
	}

	if upd.IsFavorite != nil {
		rec.IsFavorite = *upd.IsFavorite
	}
	if upd.Notes != nil {
		rec.Notes = *upd.Notes
	}
	if upd.SourceDetails != nil {
		rec.SourceDetails = *upd.SourceDetails
	}
	s.records[wordID] = rec
	s.mu.Unlock()

	return rec, s.persist(rec)
}

// ToggleFavorite flips the favorite flag and returns the new record.
func (s *Store) ToggleFavorite(wordID int64) (models.MasteryRecord, error) {
	s.mu.Lock()
	rec, ok := s.records[wordID]
	if !ok {
		s.mu.Unlock()
		return models.MasteryRecord{}, ErrNotFound
	}
	rec.IsFavorite = !rec.IsFavorite
	s.records[wordID] = rec
	s.mu.Unlock()

	return rec, s.persist(rec)
}

// Remove deletes one record (explicit user removal).
func (s *Store) Remove(wordID int64) error {
	s.mu.Lock()
	_, ok := s.records[wordID]
	delete(s.records, wordID)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if s.persister != nil {
		if err := s.persister.DeleteRecord(s.userID, wordID); err != nil {
			return fmt.Errorf("failed to delete mastery record: %w", err)
		}
	}
	return nil
}

// RemoveAll resets the notebook.
func (s *Store) RemoveAll() error {
	s.mu.Lock()
	s.records = make(map[int64]models.MasteryRecord)
	s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	if err := s.persister.ClearRecords(s.userID); err != nil {
		return fmt.Errorf("failed to clear mastery records: %w", err)
	}
	return nil
}

func (s *Store) persist(rec models.MasteryRecord) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.SaveRecord(s.userID, rec); err != nil {
		return fmt.Errorf("failed to save mastery record: %w", err)
	}
	return nil
}
