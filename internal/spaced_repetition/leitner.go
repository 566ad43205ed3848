package spaced_repetition

import (
	"fmt"
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// Leitner implements the fixed-interval five-level review scheme.
// All methods are pure: they never mutate their inputs and have no
// side effects beyond the returned values, so a single instance can
// be shared by every session.
type Leitner struct {
	// Review intervals in days, indexed by level-1.
	Intervals []int
}

// NewLeitner creates a scheduler with the product's interval table:
// level 1 reviews daily, level 5 monthly.
func NewLeitner() *Leitner {
	return &Leitner{
		Intervals: []int{1, 3, 7, 14, 30},
	}
}

// IntervalDays returns the review interval for a mastery level.
// Level must be within [models.MinLevel, models.MaxLevel]; passing
// anything else is a bug at the call site and panics.
func (l *Leitner) IntervalDays(level int) int {
	if level < models.MinLevel || level > models.MaxLevel {
		panic(fmt.Sprintf("spaced_repetition: level %d out of range [%d,%d]", level, models.MinLevel, models.MaxLevel))
	}
	return l.Intervals[level-models.MinLevel]
}

// NextReviewAt returns the next review timestamp for a word at the
// given level, reviewed at now. Deterministic, no jitter.
func (l *Leitner) NextReviewAt(level int, now time.Time) time.Time {
	return now.AddDate(0, 0, l.IntervalDays(level))
}

// Transition applies one graded review outcome to a record and
// returns the updated copy. The level moves exactly one step in the
// direction of the outcome, clamped to [MinLevel, MaxLevel].
func (l *Leitner) Transition(rec models.MasteryRecord, successful bool, now time.Time) models.MasteryRecord {
	level := clampLevel(rec.Level)
	if successful {
		if level < models.MaxLevel {
			level++
		}
	} else {
		if level > models.MinLevel {
			level--
		}
	}

	reviewed := now
	next := l.NextReviewAt(level, now)

	rec.Level = level
	rec.ReviewCount++
	rec.LastReviewed = &reviewed
	rec.NextReview = &next
	return rec
}

// IsDue reports whether the record should be reviewed at now.
// A record without a scheduled next review is always due, and the
// boundary is inclusive: a record becomes not-due only strictly
// after its NextReview passes now.
func (l *Leitner) IsDue(rec models.MasteryRecord, now time.Time) bool {
	if rec.NextReview == nil {
		return true
	}
	return !rec.NextReview.After(now)
}

// SelectDue filters records down to the due subset. The returned
// order is unspecified; callers shuffle or sort as their flow needs.
func (l *Leitner) SelectDue(records []models.MasteryRecord, now time.Time) []models.MasteryRecord {
	var due []models.MasteryRecord
	for _, rec := range records {
		if l.IsDue(rec, now) {
			due = append(due, rec)
		}
	}
	return due
}

// clampLevel normalizes stored levels into the valid range. Records
// loaded from older data may carry a zero level; treat it as level 1.
func clampLevel(level int) int {
	if level < models.MinLevel {
		return models.MinLevel
	}
	if level > models.MaxLevel {
		return models.MaxLevel
	}
	return level
}
