package events

import (
	"context"

	"go.uber.org/zap"
)

// ZapSink writes each event as one structured debug log line.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates a sink that logs through log.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("events")}
}

func (z *ZapSink) Emit(_ context.Context, e Event) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Time("time", e.Time),
	}
	if e.SessionID != "" {
		fields = append(fields, zap.String("session_id", e.SessionID))
	}
	if e.Subject != "" {
		fields = append(fields, zap.String("subject", e.Subject))
	}
	if len(e.ItemIDs) > 0 {
		fields = append(fields, zap.Strings("item_ids", e.ItemIDs))
	}
	if e.Count != 0 {
		fields = append(fields, zap.Int("count", e.Count))
	}
	if e.Detail != "" {
		fields = append(fields, zap.String("detail", e.Detail))
	}

	if e.Kind == KindPersistWarning || e.Kind == KindInsufficientItems {
		z.log.Warn("decision", fields...)
		return
	}
	z.log.Debug("decision", fields...)
}
