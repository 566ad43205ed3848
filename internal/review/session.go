package review

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/vocabengine/internal/notebook"
	"github.com/example/vocabengine/pkg/models"
)

// Sentinel errors for the review package. Check with errors.Is.
var (
	// ErrEmptySession signals that there is nothing due to review.
	// Expected and recoverable: callers show a "nothing due" view.
	ErrEmptySession = errors.New("review: no records due for review")
	// ErrInvalidTransition signals an operation called in the wrong
	// phase. This is a bug at the call site, not a runtime condition.
	ErrInvalidTransition = errors.New("review: invalid state transition")
)

// StartingLives is the number of lives a session begins with. Lives
// are a motivational counter: reaching zero never ends the session.
const StartingLives = 3

// Phase is the current step of the review state machine.
type Phase int

const (
	// PhasePresenting shows the prompt side of the current word.
	PhasePresenting Phase = iota
	// PhaseRevealing shows the answer and awaits a grade.
	PhaseRevealing
	// PhaseCompleted means every queued word has been graded.
	PhaseCompleted
)

// Session drives one review run over a queue of due records. The
// queue is snapshotted and shuffled once at start; its order never
// changes afterwards. A session belongs to a single caller and must
// not be driven from two goroutines.
type Session struct {
	store  *notebook.Store
	queue  []models.MasteryRecord
	cursor int
	phase  Phase

	streak    int
	maxStreak int
	lives     int
	correct   int
	incorrect int

	startTime time.Time
	endTime   time.Time

	now func() time.Time
}

// Outcome reports the effect of one graded answer so callers can
// render feedback without re-querying session state.
type Outcome struct {
	Record     models.MasteryRecord
	Successful bool
	Streak     int
	Lives      int
	Correct    int
	Incorrect  int
	Remaining  int
	Completed  bool
}

// Summary holds the final statistics of a completed session.
type Summary struct {
	Total     int
	Correct   int
	Incorrect int
	MaxStreak int
	Duration  time.Duration
}

// NewSession snapshots and shuffles the due queue and starts
// presenting the first word. Returns ErrEmptySession when there is
// nothing to review.
func NewSession(store *notebook.Store, due []models.MasteryRecord) (*Session, error) {
	if len(due) == 0 {
		return nil, ErrEmptySession
	}

	queue := make([]models.MasteryRecord, len(due))
	copy(queue, due)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	rnd.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	s := &Session{
		store: store,
		queue: queue,
		phase: PhasePresenting,
		lives: StartingLives,
		now:   time.Now,
	}
	s.startTime = s.now()
	return s, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Streak returns the current run of consecutive correct answers.
func (s *Session) Streak() int {
	return s.streak
}

// Progress returns the number of graded words and the queue length.
func (s *Session) Progress() (done, total int) {
	return s.cursor, len(s.queue)
}

// Current returns the record under review.
func (s *Session) Current() (models.MasteryRecord, error) {
	if s.phase == PhaseCompleted {
		return models.MasteryRecord{}, ErrInvalidTransition
	}
	return s.queue[s.cursor], nil
}

// Reveal flips the current word to its answer side. Valid only while
// presenting; audio playback and animation are the caller's concern.
func (s *Session) Reveal() error {
	if s.phase != PhasePresenting {
		return ErrInvalidTransition
	}
	s.phase = PhaseRevealing
	return nil
}

// Respond grades the current word. Valid only after Reveal. The
// outcome is applied to the mastery record through the store, the
// session counters update, and the cursor advances; grading the last
// word completes the session. Persistence errors propagate after the
// record has been updated in memory.
func (s *Session) Respond(successful bool) (*Outcome, error) {
	if s.phase != PhaseRevealing {
		return nil, ErrInvalidTransition
	}
	return s.grade(successful)
}

// Skip grades the current word as an automatic failure without
// requiring the learner to reveal it first.
func (s *Session) Skip() (*Outcome, error) {
	if s.phase != PhasePresenting && s.phase != PhaseRevealing {
		return nil, ErrInvalidTransition
	}
	return s.grade(false)
}

func (s *Session) grade(successful bool) (*Outcome, error) {
	current := s.queue[s.cursor]

	rec, err := s.store.ApplyReview(current.WordID, successful, s.now())
	if err != nil {
		// The session stays in its current phase; the caller decides
		// whether to retry or abandon.
		return nil, err
	}

	if successful {
		s.streak++
		if s.streak > s.maxStreak {
			s.maxStreak = s.streak
		}
		s.correct++
	} else {
		s.streak = 0
		if s.lives > 0 {
			s.lives--
		}
		s.incorrect++
	}

	s.cursor++
	if s.cursor >= len(s.queue) {
		s.phase = PhaseCompleted
		s.endTime = s.now()
	} else {
		s.phase = PhasePresenting
	}

	return &Outcome{
		Record:     rec,
		Successful: successful,
		Streak:     s.streak,
		Lives:      s.lives,
		Correct:    s.correct,
		Incorrect:  s.incorrect,
		Remaining:  len(s.queue) - s.cursor,
		Completed:  s.phase == PhaseCompleted,
	}, nil
}

// Summary returns the session statistics. Valid only once completed.
func (s *Session) Summary() (*Summary, error) {
	if s.phase != PhaseCompleted {
		return nil, ErrInvalidTransition
	}
	return &Summary{
		Total:     len(s.queue),
		Correct:   s.correct,
		Incorrect: s.incorrect,
		MaxStreak: s.maxStreak,
		Duration:  s.endTime.Sub(s.startTime),
	}, nil
}
