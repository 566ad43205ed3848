package stats

import (
	"fmt"
	"time"

	"github.com/example/vocabengine/internal/notebook"
	"github.com/example/vocabengine/internal/spaced_repetition"
	"github.com/example/vocabengine/pkg/models"
)

// WordResolver looks up word content so records can be joined to
// their CEFR band. Implemented by the content layer.
type WordResolver interface {
	GetByID(id int64) (*models.Word, error)
}

// Aggregator derives read-only dashboard statistics from a mastery
// record store. It never mutates anything.
type Aggregator struct {
	store   *notebook.Store
	words   WordResolver
	leitner *spaced_repetition.Leitner
}

// New creates an aggregator over the given store and word resolver.
func New(store *notebook.Store, words WordResolver) *Aggregator {
	return &Aggregator{
		store:   store,
		words:   words,
		leitner: spaced_repetition.NewLeitner(),
	}
}

// CountsByLevel returns the record count per mastery level. All five
// levels are always present, zero-filled.
func (a *Aggregator) CountsByLevel() map[int]int {
	counts := make(map[int]int, models.MaxLevel)
	for level := models.MinLevel; level <= models.MaxLevel; level++ {
		counts[level] = 0
	}
	for _, rec := range a.store.All() {
		level := rec.Level
		if level < models.MinLevel || level > models.MaxLevel {
			level = models.MinLevel
		}
		counts[level]++
	}
	return counts
}

// CountsByBand returns the record count per CEFR band, joined through
// the word resolver. All six bands are always present, zero-filled.
// Records whose word cannot be resolved are skipped rather than
// failing the whole dashboard.
func (a *Aggregator) CountsByBand() (map[models.Band]int, error) {
	counts := make(map[models.Band]int, 6)
	for _, band := range models.Bands() {
		counts[band] = 0
	}

	for _, rec := range a.store.All() {
		word, err := a.words.GetByID(rec.WordID)
		if err != nil {
			continue
		}
		if word.CEFR.Valid() {
			counts[word.CEFR]++
		}
	}
	return counts, nil
}

// CountsByGroup folds the per-band counts into the basic /
// intermediate / advanced summary groups.
func (a *Aggregator) CountsByGroup() (map[models.BandGroup]int, error) {
	byBand, err := a.CountsByBand()
	if err != nil {
		return nil, fmt.Errorf("failed to count by band: %w", err)
	}

	groups := make(map[models.BandGroup]int, 3)
	for _, g := range models.BandGroups() {
		groups[g] = 0
	}
	for band, n := range byBand {
		groups[band.Group()] += n
	}
	return groups, nil
}

// DueCount returns the number of records due at now.
func (a *Aggregator) DueCount(now time.Time) int {
	return len(a.leitner.SelectDue(a.store.All(), now))
}

// TimeUntilNextDue returns how long until the next scheduled review.
// Nil when something is already due (there is no "next" then) or when
// no record carries a schedule at all.
func (a *Aggregator) TimeUntilNextDue(now time.Time) *time.Duration {
	var min *time.Duration
	for _, rec := range a.store.All() {
		if a.leitner.IsDue(rec, now) {
			return nil
		}
		d := rec.NextReview.Sub(now)
		if min == nil || d < *min {
			min = &d
		}
	}
	return min
}

// AverageLevel returns the mean mastery level across all records,
// or 0 when the notebook is empty.
func (a *Aggregator) AverageLevel() float64 {
	records := a.store.All()
	if len(records) == 0 {
		return 0
	}

	sum := 0
	for _, rec := range records {
		sum += rec.Level
	}
	return float64(sum) / float64(len(records))
}

// Overview is the one-call dashboard summary.
type Overview struct {
	TotalWords   int
	Favorites    int
	DueNow       int
	AverageLevel float64
}

// Overview computes the headline numbers in a single pass.
func (a *Aggregator) Overview(now time.Time) Overview {
	records := a.store.All()

	o := Overview{TotalWords: len(records)}
	sum := 0
	for _, rec := range records {
		sum += rec.Level
		if rec.IsFavorite {
			o.Favorites++
		}
		if a.leitner.IsDue(rec, now) {
			o.DueNow++
		}
	}
	if len(records) > 0 {
		o.AverageLevel = float64(sum) / float64(len(records))
	}
	return o
}
