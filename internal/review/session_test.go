package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabengine/internal/notebook"
	"github.com/example/vocabengine/pkg/models"
)

func seededStore(t *testing.T, wordIDs ...int64) *notebook.Store {
	t.Helper()
	s := notebook.NewStore(1, nil)
	for _, id := range wordIDs {
		_, err := s.Add(id, "lesson", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}
	return s
}

func startSession(t *testing.T, wordIDs ...int64) (*Session, *notebook.Store) {
	t.Helper()
	store := seededStore(t, wordIDs...)
	sess, err := NewSession(store, store.All())
	require.NoError(t, err)
	return sess, store
}

func TestNewSessionEmpty(t *testing.T) {
	store := notebook.NewStore(1, nil)

	sess, err := NewSession(store, nil)
	assert.ErrorIs(t, err, ErrEmptySession)
	assert.Nil(t, sess)
}

func TestNewSessionStartsPresenting(t *testing.T) {
	sess, _ := startSession(t, 1, 2, 3)

	assert.Equal(t, PhasePresenting, sess.Phase())
	assert.Equal(t, StartingLives, sess.Lives())
	assert.Equal(t, 0, sess.Streak())

	done, total := sess.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 3, total)
}

func TestNewSessionSnapshotsQueue(t *testing.T) {
	store := seededStore(t, 1, 2, 3)
	due := store.All()

	sess, err := NewSession(store, due)
	require.NoError(t, err)

	// Mutating the caller's slice must not affect the session queue.
	due[0] = models.MasteryRecord{WordID: 99}
	cur, err := sess.Current()
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), cur.WordID)
}

func TestRespondRequiresReveal(t *testing.T) {
	sess, _ := startSession(t, 1)

	_, err := sess.Respond(true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRevealTwiceInvalid(t *testing.T) {
	sess, _ := startSession(t, 1)

	require.NoError(t, sess.Reveal())
	assert.ErrorIs(t, sess.Reveal(), ErrInvalidTransition)
}

func TestSuccessfulRespond(t *testing.T) {
	sess, store := startSession(t, 1)

	require.NoError(t, sess.Reveal())
	out, err := sess.Respond(true)
	require.NoError(t, err)

	assert.True(t, out.Successful)
	assert.Equal(t, 1, out.Streak)
	assert.Equal(t, StartingLives, out.Lives)
	assert.Equal(t, 1, out.Correct)
	assert.Equal(t, 0, out.Incorrect)
	assert.True(t, out.Completed)
	assert.Equal(t, 2, out.Record.Level)

	// The store saw the transition.
	rec, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Level)
	assert.Equal(t, 1, rec.ReviewCount)
}

func TestFailedRespondResetsStreakAndCostsLife(t *testing.T) {
	sess, _ := startSession(t, 1, 2, 3)

	require.NoError(t, sess.Reveal())
	out, err := sess.Respond(true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Streak)

	require.NoError(t, sess.Reveal())
	out, err = sess.Respond(false)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, StartingLives-1, out.Lives)
	assert.Equal(t, 1, out.Incorrect)
	assert.False(t, out.Completed)
	assert.Equal(t, PhasePresenting, sess.Phase())
}

func TestZeroLivesDoesNotEndSession(t *testing.T) {
	sess, _ := startSession(t, 1, 2, 3, 4)

	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Reveal())
		out, err := sess.Respond(false)
		require.NoError(t, err)
		assert.Equal(t, StartingLives-i-1, out.Lives)
	}

	// Lives are exhausted but the session keeps presenting.
	assert.Equal(t, 0, sess.Lives())
	assert.Equal(t, PhasePresenting, sess.Phase())

	require.NoError(t, sess.Reveal())
	out, err := sess.Respond(false)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Lives) // floor at zero
	assert.True(t, out.Completed)
}

func TestSkipIsFailureEquivalent(t *testing.T) {
	sess, store := startSession(t, 1)

	// Skip straight from Presenting, no Reveal needed.
	out, err := sess.Skip()
	require.NoError(t, err)

	assert.False(t, out.Successful)
	assert.Equal(t, StartingLives-1, out.Lives)
	assert.Equal(t, 1, out.Incorrect)

	rec, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, models.MinLevel, rec.Level)
	assert.Equal(t, 1, rec.ReviewCount)
}

func TestSkipAfterRevealAllowed(t *testing.T) {
	sess, _ := startSession(t, 1, 2)

	require.NoError(t, sess.Reveal())
	out, err := sess.Skip()
	require.NoError(t, err)
	assert.False(t, out.Successful)
}

func TestSummaryOnlyWhenCompleted(t *testing.T) {
	sess, _ := startSession(t, 1, 2)

	_, err := sess.Summary()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSummaryTracksMaxStreak(t *testing.T) {
	sess, _ := startSession(t, 1, 2, 3, 4)

	grades := []bool{true, true, false, true}
	for _, g := range grades {
		require.NoError(t, sess.Reveal())
		_, err := sess.Respond(g)
		require.NoError(t, err)
	}

	sum, err := sess.Summary()
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 3, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	// Final streak is 1 but the best run was 2.
	assert.Equal(t, 2, sum.MaxStreak)
}

func TestCompletedSessionRejectsFurtherCalls(t *testing.T) {
	sess, _ := startSession(t, 1)

	require.NoError(t, sess.Reveal())
	_, err := sess.Respond(true)
	require.NoError(t, err)

	assert.ErrorIs(t, sess.Reveal(), ErrInvalidTransition)
	_, err = sess.Respond(true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = sess.Skip()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = sess.Current()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEveryQueuedWordGetsGraded(t *testing.T) {
	sess, store := startSession(t, 1, 2, 3)

	for {
		_, err := sess.Current()
		if err != nil {
			break
		}
		require.NoError(t, sess.Reveal())
		_, err = sess.Respond(true)
		require.NoError(t, err)
	}

	for _, id := range []int64{1, 2, 3} {
		rec, err := store.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.ReviewCount, "word %d", id)
	}
}
