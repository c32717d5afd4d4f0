package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	var r Recorder

	ids := []string{"a", "b"}
	r.Emit(ctx, Event{Kind: KindSelection, ItemIDs: ids, Count: 2})
	r.Emit(ctx, Event{Kind: KindShortfall, Count: 5})
	r.Emit(ctx, Event{Kind: KindSelection, Count: 1})

	ids[0] = "mutated"
	all := r.Events()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ItemIDs[0], "recorder keeps its own copy of ItemIDs")

	sel := r.OfKind(KindSelection)
	require.Len(t, sel, 2)
	assert.Equal(t, 2, sel[0].Count)
	assert.Equal(t, 1, sel[1].Count)
	assert.Empty(t, r.OfKind(KindFallback))

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestFanout(t *testing.T) {
	var a, b Recorder
	f := Fanout{&a, nil, &b, Nop{}}

	f.Emit(context.Background(), Event{Kind: KindAnswer, Subject: "hej"})

	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))
	var r Recorder
	assert.Same(t, &r, OrNop(&r))
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewZapSink(zap.New(core))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sink.Emit(context.Background(), Event{Kind: KindShortfall, SessionID: "s1", Time: now, Count: 7})
	sink.Emit(context.Background(), Event{Kind: KindPersistWarning, Detail: "disk full"})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "events", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, "shortfall", fields["kind"])
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, int64(7), fields["count"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].ContextMap()["detail"])
}
