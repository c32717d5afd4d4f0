package mastery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stohl/tsp-skolan-sub000/internal/events"
	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

type brokenPersister struct{}

func (brokenPersister) Load(context.Context) (map[string]progress.Record, error) { return nil, nil }
func (brokenPersister) Save(context.Context, map[string]progress.Record) error {
	return errors.New("disk full")
}

func newTestService(t *testing.T, p progress.Persister) (*Service, *progress.Store, *events.Recorder) {
	t.Helper()
	store, err := progress.Open(context.Background(), p)
	require.NoError(t, err)
	rec := &events.Recorder{}
	clock := func() time.Time { return t0 }
	return NewService(store, rec, WithClock(clock)), store, rec
}

func TestService_FiveCorrectAnswers(t *testing.T) {
	ctx := context.Background()
	p := progress.NewMemoryPersister(nil)
	svc, store, rec := newTestService(t, p)

	level := progress.Learning
	_, err := store.Set(ctx, "hej", progress.Update{Level: &level})
	require.NoError(t, err)

	var out Outcome
	for i := 0; i < 5; i++ {
		out, err = svc.RecordAnswer(ctx, "s1", "hej", true)
		require.NoError(t, err)
	}

	assert.Equal(t, progress.Learned, out.Record.Level)
	assert.Equal(t, 5, out.Record.Points)
	assert.Equal(t, 5, out.Record.Stats.Correct)
	assert.Equal(t, 0, out.Record.Stats.Incorrect)
	require.NotNil(t, out.Transition)
	assert.Equal(t, "hej", out.Transition.ItemID)

	assert.Len(t, rec.OfKind(events.KindAnswer), 5)
	tr := rec.OfKind(events.KindTransition)
	require.Len(t, tr, 1)
	assert.Equal(t, "learning->learned (points-full)", tr[0].Detail)
	assert.Equal(t, "s1", tr[0].SessionID)

	saved, _ := p.Load(ctx)
	assert.Equal(t, progress.Learned, saved["hej"].Level)
}

func TestService_ForceToLearned(t *testing.T) {
	svc, store, rec := newTestService(t, nil)

	out, err := svc.ForceToLearned(context.Background(), "tack")
	require.NoError(t, err)

	assert.Equal(t, progress.Learned, out.Record.Level)
	assert.Equal(t, 5, out.Record.Points)
	assert.Equal(t, out.Record, store.Get("tack"))
	assert.Len(t, rec.OfKind(events.KindTransition), 1)
}

func TestService_BulkSet(t *testing.T) {
	ctx := context.Background()
	svc, store, rec := newTestService(t, nil)

	_, err := svc.RecordAnswer(ctx, "", "a", false)
	require.NoError(t, err)

	five := 5
	require.NoError(t, svc.BulkSet(ctx, []string{"a", "b"}, progress.Learned, &five))

	assert.Equal(t, progress.Learned, store.Get("b").Level)
	assert.Equal(t, 1, store.Get("a").Stats.Incorrect, "history kept")

	ev := rec.OfKind(events.KindTransition)
	require.NotEmpty(t, ev)
	last := ev[len(ev)-1]
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, "bulk:learned", last.Detail)
}

func TestService_BulkSetRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, nil)

	assert.Error(t, svc.BulkSet(ctx, []string{"a"}, progress.Level(7), nil))
	six := 6
	assert.Error(t, svc.BulkSet(ctx, []string{"a"}, progress.Learning, &six))
	three := 3
	assert.Error(t, svc.BulkSet(ctx, []string{"a"}, progress.Learned, &three))
}

func TestService_BulkSetLearnedWithoutPoints(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, nil)

	require.NoError(t, svc.BulkSet(ctx, []string{"x"}, progress.Learned, nil))

	r := store.Get("x")
	assert.Equal(t, progress.Learned, r.Level)
	assert.Equal(t, progress.MaxPoints, r.Points)
}

func TestService_PersistFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	svc, store, rec := newTestService(t, brokenPersister{})

	out, err := svc.RecordAnswer(ctx, "s1", "hej", true)

	var pe *progress.PersistError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, progress.Learning, out.Record.Level)
	assert.Equal(t, progress.Learning, store.Get("hej").Level, "memory stays authoritative")

	warn := rec.OfKind(events.KindPersistWarning)
	require.Len(t, warn, 1)
	assert.Contains(t, warn[0].Detail, "disk full")
}
