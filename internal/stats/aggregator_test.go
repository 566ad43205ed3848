package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabengine/internal/notebook"
	"github.com/example/vocabengine/pkg/models"
)

// fakeResolver maps word IDs to bands.
type fakeResolver struct {
	bands map[int64]models.Band
}

func (f *fakeResolver) GetByID(id int64) (*models.Word, error) {
	band, ok := f.bands[id]
	if !ok {
		return nil, errors.New("word not found")
	}
	return &models.Word{ID: id, CEFR: band}, nil
}

func seed(t *testing.T, levels map[int64]int) *notebook.Store {
	t.Helper()
	store := notebook.NewStore(1, nil)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for wordID, level := range levels {
		rec := models.MasteryRecord{
			UserID: 1,
			WordID: wordID,
			Level:  level,
		}
		next := now.AddDate(0, 0, level)
		rec.NextReview = &next
		require.NoError(t, store.Upsert(rec))
	}
	return store
}

func TestCountsByLevelZeroFilled(t *testing.T) {
	agg := New(notebook.NewStore(1, nil), &fakeResolver{})

	counts := agg.CountsByLevel()
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, counts)
}

func TestCountsByLevel(t *testing.T) {
	store := seed(t, map[int64]int{1: 1, 2: 1, 3: 3, 4: 5})
	agg := New(store, &fakeResolver{})

	counts := agg.CountsByLevel()
	assert.Equal(t, map[int]int{1: 2, 2: 0, 3: 1, 4: 0, 5: 1}, counts)
}

func TestCountsByBand(t *testing.T) {
	store := seed(t, map[int64]int{1: 1, 2: 2, 3: 3})
	resolver := &fakeResolver{bands: map[int64]models.Band{
		1: models.BandA1,
		2: models.BandB2,
		3: models.BandB2,
	}}
	agg := New(store, resolver)

	counts, err := agg.CountsByBand()
	require.NoError(t, err)

	assert.Equal(t, 1, counts[models.BandA1])
	assert.Equal(t, 2, counts[models.BandB2])
	// All six bands present even when empty.
	assert.Len(t, counts, 6)
	assert.Equal(t, 0, counts[models.BandC2])
}

func TestCountsByBandSkipsUnresolvedWords(t *testing.T) {
	store := seed(t, map[int64]int{1: 1, 2: 2})
	resolver := &fakeResolver{bands: map[int64]models.Band{1: models.BandA1}}
	agg := New(store, resolver)

	counts, err := agg.CountsByBand()
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.BandA1])
}

func TestCountsByGroup(t *testing.T) {
	store := seed(t, map[int64]int{1: 1, 2: 2, 3: 3, 4: 4})
	resolver := &fakeResolver{bands: map[int64]models.Band{
		1: models.BandA1,
		2: models.BandA2,
		3: models.BandB1,
		4: models.BandC2,
	}}
	agg := New(store, resolver)

	groups, err := agg.CountsByGroup()
	require.NoError(t, err)

	assert.Equal(t, 2, groups[models.GroupBasic])
	assert.Equal(t, 1, groups[models.GroupIntermediate])
	assert.Equal(t, 1, groups[models.GroupAdvanced])
}

func TestDueCountAndTimeUntilNextDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := notebook.NewStore(1, nil)

	past := now.Add(-time.Hour)
	future := now.Add(48 * time.Hour)
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 1, Level: 1, NextReview: &past}))
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 2, Level: 2, NextReview: &future}))

	agg := New(store, &fakeResolver{})
	assert.Equal(t, 1, agg.DueCount(now))

	// Something is due, so there is no "next due" to wait for.
	assert.Nil(t, agg.TimeUntilNextDue(now))
}

func TestTimeUntilNextDueIsMinimum(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := notebook.NewStore(1, nil)

	in12 := now.Add(12 * time.Hour)
	in48 := now.Add(48 * time.Hour)
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 1, Level: 1, NextReview: &in48}))
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 2, Level: 2, NextReview: &in12}))

	agg := New(store, &fakeResolver{})
	require.Equal(t, 0, agg.DueCount(now))

	d := agg.TimeUntilNextDue(now)
	require.NotNil(t, d)
	assert.Equal(t, 12*time.Hour, *d)
}

func TestTimeUntilNextDueEmptyStore(t *testing.T) {
	agg := New(notebook.NewStore(1, nil), &fakeResolver{})
	assert.Nil(t, agg.TimeUntilNextDue(time.Now()))
}

func TestAverageLevel(t *testing.T) {
	agg := New(notebook.NewStore(1, nil), &fakeResolver{})
	assert.Equal(t, 0.0, agg.AverageLevel())

	store := seed(t, map[int64]int{1: 2, 2: 4})
	agg = New(store, &fakeResolver{})
	assert.InDelta(t, 3.0, agg.AverageLevel(), 1e-9)
}

func TestOverview(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := notebook.NewStore(1, nil)

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 1, Level: 1, NextReview: &past, IsFavorite: true}))
	require.NoError(t, store.Upsert(models.MasteryRecord{WordID: 2, Level: 3, NextReview: &future}))

	agg := New(store, &fakeResolver{})
	o := agg.Overview(now)

	assert.Equal(t, 2, o.TotalWords)
	assert.Equal(t, 1, o.Favorites)
	assert.Equal(t, 1, o.DueNow)
	assert.InDelta(t, 2.0, o.AverageLevel, 1e-9)
}
