package practice

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// Sentinel errors for the practice package. Check with errors.Is.
var (
	// ErrEmptySession signals that no questions could be built,
	// either because zero were requested or no words matched.
	ErrEmptySession = errors.New("practice: no questions to practice")
	// ErrInvalidTransition signals an operation called in the wrong
	// phase or order. A bug at the call site.
	ErrInvalidTransition = errors.New("practice: invalid state transition")
)

// Result records one answered question.
type Result struct {
	WordID     int64
	UserAnswer string
	Correct    bool
	AnsweredAt time.Time
}

// Session drives one practice drill. Practice never touches mastery
// records: it is a scoring exercise, not a review, and that
// separation is deliberate. The flow per question is Answer then
// Next, matching the product's "check, then continue" interaction.
type Session struct {
	mode      Mode
	questions []Question
	cursor    int
	answered  bool

	correct   int
	incorrect int
	results   []Result

	startTime time.Time
	endTime   time.Time
	completed bool

	now func() time.Time
}

// NewSession samples questionCount questions through the word source
// and starts the drill. Returns ErrEmptySession when questionCount
// is not positive or the source has no matching words.
func NewSession(src WordSource, questionCount int, filter models.WordFilter, mode Mode) (*Session, error) {
	if questionCount <= 0 {
		return nil, ErrEmptySession
	}
	if mode == "" {
		mode = ModeMixed
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions, err := buildQuestions(src, questionCount, filter, mode, rnd)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrEmptySession
	}

	s := &Session{
		mode:      mode,
		questions: questions,
		now:       time.Now,
	}
	s.startTime = s.now()
	return s, nil
}

// Completed reports whether the drill has finished.
func (s *Session) Completed() bool {
	return s.completed
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Progress returns the current question index and the total count.
func (s *Session) Progress() (current, total int) {
	return s.cursor, len(s.questions)
}

// Current returns the question at the cursor.
func (s *Session) Current() (Question, error) {
	if s.completed {
		return Question{}, ErrInvalidTransition
	}
	return s.questions[s.cursor], nil
}

// Answer checks the learner's answer against the current question:
// case-insensitive exact match after trimming. Each question accepts
// exactly one answer, and answering does not advance the cursor.
func (s *Session) Answer(answer string) (*Result, error) {
	if s.completed || s.answered {
		return nil, ErrInvalidTransition
	}

	q := s.questions[s.cursor]
	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Answer))

	if correct {
		s.correct++
	} else {
		s.incorrect++
	}

	res := Result{
		WordID:     q.Word.ID,
		UserAnswer: answer,
		Correct:    correct,
		AnsweredAt: s.now(),
	}
	s.results = append(s.results, res)
	s.answered = true

	return &res, nil
}

// Next moves to the following question. The current question must
// have been answered. Advancing past the last question completes the
// session.
func (s *Session) Next() error {
	if s.completed || !s.answered {
		return ErrInvalidTransition
	}

	s.answered = false
	s.cursor++
	if s.cursor >= len(s.questions) {
		s.completed = true
		s.endTime = s.now()
	}
	return nil
}

// Score returns the rounded percentage of correct answers. Valid
// only once completed; zero-question sessions are rejected at start,
// so the division is always defined.
func (s *Session) Score() (int, error) {
	if !s.completed {
		return 0, ErrInvalidTransition
	}
	return int(math.Round(100 * float64(s.correct) / float64(len(s.questions)))), nil
}

// Results returns the per-question outcomes recorded so far.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Result builds the history row for a completed session.
func (s *Session) Result(userID int64) (models.PracticeResult, error) {
	score, err := s.Score()
	if err != nil {
		return models.PracticeResult{}, err
	}
	return models.PracticeResult{
		UserID:         userID,
		Mode:           string(s.mode),
		TotalQuestions: len(s.questions),
		CorrectAnswers: s.correct,
		Score:          score,
		StartedAt:      s.startTime,
		Duration:       int(s.endTime.Sub(s.startTime) / time.Second),
	}, nil
}
