package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stohl/tsp-skolan-sub000/internal/catalog"
	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/mastery"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
	"github.com/Stohl/tsp-skolan-sub000/internal/session"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, n int, phrases []catalog.Phrase) (*Service, *events.Recorder) {
	t.Helper()
	items := make([]catalog.Item, n)
	for i := range items {
		id := fmt.Sprintf("w%02d", i)
		items[i] = catalog.Item{ID: id, Text: id}
	}
	cat, err := catalog.New(items, phrases, nil, nil)
	require.NoError(t, err)

	store, err := progress.Open(context.Background(), progress.NewMemoryPersister(nil))
	require.NoError(t, err)

	rec := &events.Recorder{}
	svc := New(cat, store, Options{
		Sink:  rec,
		Clock: func() time.Time { return fixedNow },
	})
	return svc, rec
}

func TestStartSession_EmptyProgressFallsBack(t *testing.T) {
	svc, rec := newService(t, 20, nil)

	sess, err := svc.StartSession(context.Background(), session.ModeMixed, StartOptions{Seed: 7})
	require.NoError(t, err)
	require.Equal(t, session.DefaultSessionSize, sess.Len())
	for _, e := range sess.Entries {
		assert.Equal(t, session.SourceFallback, e.Source)
	}
	assert.NotEmpty(t, rec.OfKind(events.KindFallback))
}

func TestStartSession_Errors(t *testing.T) {
	svc, _ := newService(t, 5, nil)
	ctx := context.Background()

	_, err := svc.StartSession(ctx, session.Mode("flashcards"), StartOptions{})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = svc.StartSession(ctx, session.ModeCustom, StartOptions{})
	assert.Error(t, err)

	_, err = svc.StartSession(ctx, session.ModeMultipleChoice, StartOptions{Seed: 1})
	var ie *session.InsufficientItemsError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, ie.Have)

	_, err = svc.StartSession(ctx, session.ModePhrases, StartOptions{Seed: 1})
	require.ErrorAs(t, err, &ie)
}

func TestFiveCorrectAnswersPromote(t *testing.T) {
	svc, rec := newService(t, 20, nil)
	ctx := context.Background()

	zero := 0
	require.NoError(t, svc.BulkTag(ctx, []string{"w03"}, progress.Learning, &zero))

	var out mastery.Outcome
	for i := 0; i < progress.MaxPoints; i++ {
		sess, err := svc.StartSession(ctx, session.ModeCustom, StartOptions{Items: []string{"w03"}, Seed: int64(i + 1)})
		require.NoError(t, err)
		require.Equal(t, 1, sess.Len())

		out, err = svc.RecordAnswer(ctx, sess, "w03", true)
		require.NoError(t, err)
		assert.True(t, sess.Done())
	}

	assert.Equal(t, progress.Learned, out.Record.Level)
	assert.Equal(t, progress.MaxPoints, out.Record.Points)
	assert.Equal(t, progress.MaxPoints, out.Record.Stats.Correct)
	assert.Zero(t, out.Record.Stats.Incorrect)
	assert.Equal(t, fixedNow, out.Record.Stats.LastPracticed)
	require.NotNil(t, out.Transition)
	assert.Equal(t, mastery.TriggerPointsFull, out.Transition.Trigger)

	assert.Len(t, rec.OfKind(events.KindAnswer), progress.MaxPoints)
	assert.Equal(t, 1, svc.Counts()[progress.Learned])
}

func TestRecordAnswer_OutsideSession(t *testing.T) {
	svc, _ := newService(t, 20, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, session.ModeMixed, StartOptions{Seed: 3})
	require.NoError(t, err)

	_, err = svc.RecordAnswer(ctx, sess, "nope", true)
	assert.ErrorIs(t, err, session.ErrUnknownEntry)
	assert.Equal(t, progress.Default(), svc.Progress("nope"))
}

func TestForceAndBulkRejectUnknownItems(t *testing.T) {
	svc, _ := newService(t, 3, nil)
	ctx := context.Background()

	_, err := svc.ForceToLearned(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownItem)

	err = svc.BulkTag(ctx, []string{"w00", "ghost"}, progress.Learned, nil)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Equal(t, progress.Unmarked, svc.Progress("w00").Level, "bulk is all or nothing")

	out, err := svc.ForceToLearned(ctx, "w01")
	require.NoError(t, err)
	assert.Equal(t, progress.Learned, out.Record.Level)
}

func TestPhraseSessionAndCandidates(t *testing.T) {
	phrases := []catalog.Phrase{
		{ID: "p1", Text: "w00 w01", LevelTag: "1", Words: []string{"w00", "w01"}},
		{ID: "p2", Text: "w00 w02", LevelTag: "1", Words: []string{"w00", "w02"}},
		{ID: "p3", Text: "w02 w03", LevelTag: "2", Words: []string{"w02", "w03"}},
	}
	svc, _ := newService(t, 5, phrases)
	ctx := context.Background()

	require.NoError(t, svc.BulkTag(ctx, []string{"w00", "w01"}, progress.Learned, nil))

	sess, err := svc.StartSession(ctx, session.ModePhrases, StartOptions{Seed: 9})
	require.NoError(t, err)
	require.Equal(t, 1, sess.Len())
	assert.Equal(t, "p1", sess.Entries[0].ID)

	_, err = svc.RecordAnswer(ctx, sess, "p1", true)
	assert.True(t, errors.Is(err, ErrPhraseEntry))
	require.NoError(t, svc.RecordPhraseAnswer(ctx, sess, "p1", true))
	assert.True(t, sess.Done())

	top := svc.TopCandidates(ctx, 0)
	require.NotEmpty(t, top)
	assert.Equal(t, "w02", top[0].ItemID)
	assert.Equal(t, 1, top[0].Count)

	near := svc.NearComplete("w02")
	require.Len(t, near, 1)
	assert.Equal(t, "p2", near[0].ID)
}

func TestChoicesAndSummary(t *testing.T) {
	svc, _ := newService(t, 12, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, session.ModeMixed, StartOptions{Seed: 11})
	require.NoError(t, err)

	e, ok := sess.Next()
	require.True(t, ok)
	opts, idx, err := svc.Choices(sess, e.ID, 4)
	require.NoError(t, err)
	require.Len(t, opts, 4)
	assert.Equal(t, e.ID, opts[idx].ID)

	_, err = svc.RecordAnswer(ctx, sess, e.ID, false)
	require.NoError(t, err)

	sum := svc.Summary(sess)
	assert.Equal(t, 1, sum.TotalQuestions)
	assert.Zero(t, sum.TotalCorrect)
}
