package console

import (
	"context"
	"log/slog"

	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/wire"
)

type logger struct{ log.Logger }

func (l logger) unknownEvent(ctx context.Context, typ wire.EventType) {
	l.Log(ctx, slog.LevelDebug, "unknown event type dropped",
		slog.String("type", string(typ)),
	)
}

func (l logger) unknownAction(ctx context.Context, action string) {
	l.Log(ctx, slog.LevelWarn, "unknown activity action dropped",
		slog.String("action", action),
	)
}

func (l logger) unknownActivity(ctx context.Context, id string) {
	l.Log(ctx, slog.LevelDebug, "activity update for unknown id ignored",
		slog.String("activity_id", id),
	)
}

func (l logger) staleSession(ctx context.Context, id string) {
	l.Log(ctx, slog.LevelDebug, "activity start ignored while recording",
		slog.String("activity_id", id),
	)
}

func (l logger) staleResult(ctx context.Context, label string) {
	l.Log(ctx, slog.LevelDebug, "prediction result ignored while inactive",
		slog.String("predicted_label", label),
	)
}

func (l logger) pollFailed(ctx context.Context, err error) {
	l.Log(ctx, slog.LevelWarn, "metrics poll failed",
		slog.String("error", err.Error()),
	)
}
