package console

import (
	"context"

	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
	"github.com/RodCaba/fp-orchestrator/wire"
)

// route dispatches a decoded push event to exactly one state holder.
// Unknown event types are logged and dropped so protocol additions never
// break the console. Routing itself mutates no state.
func (c *Console) route(ctx context.Context, event wire.Event) {
	switch ev := event.(type) {
	case *wire.SensorStatus:
		c.applySensorStatus(ctx, ev)
	case *wire.ActivityUpdate:
		c.applyActivityUpdate(ctx, ev)
	case *wire.StatsUpdate:
		c.applyStatsUpdate(ev)
	case *wire.S3StatsUpdate:
		c.applyS3StatsUpdate(ev)
	case *wire.OrchestratorStatus:
		c.applyOrchestratorStatus(ev)
	case *wire.PredictionStatus:
		c.applyPredictionStatus(ev)
	case *wire.PredictionResult:
		c.applyPredictionResult(ctx, ev)
	case *wire.PredictionProgress:
		c.applyPredictionProgress(ev)
	case *wire.UnknownEvent:
		c.log.unknownEvent(ctx, ev.Type)
	default:
		c.log.unknownEvent(ctx, event.EventType())
	}
}

func (c *Console) applySensorStatus(
	ctx context.Context,
	status *wire.SensorStatus,
) {
	c.mu.Lock()
	err := c.sensors.Apply(status)
	c.mu.Unlock()

	if err != nil {
		// The sensor set is fixed at startup; updates for anything else
		// are dropped rather than creating new slots.
		c.log.Err(ctx, err)
		return
	}
	c.changed()
}

func (c *Console) applyActivityUpdate(
	ctx context.Context,
	update *wire.ActivityUpdate,
) {
	switch update.Action {
	case wire.ActionStarted:
		c.mu.Lock()
		activity, ok := c.catalog.ByID(update.ActivityID)
		if !ok {
			c.mu.Unlock()
			c.log.unknownActivity(ctx, update.ActivityID)
			return
		}
		err := c.session.Start(activity, wallclock.Instance.Now())
		if err == nil {
			c.elapsed = IdleElapsed
		}
		c.mu.Unlock()

		if err != nil {
			// The command path already opened this session; the channels
			// converged out of order.
			c.log.staleSession(ctx, update.ActivityID)
			return
		}
		c.changed()

	case wire.ActionStopped:
		c.mu.Lock()
		c.session.Stop()
		c.elapsed = IdleElapsed
		c.mu.Unlock()
		c.changed()

	default:
		c.log.unknownAction(ctx, update.Action)
	}
}

func (c *Console) applyStatsUpdate(update *wire.StatsUpdate) {
	c.mu.Lock()
	c.stats.ApplyPipeline(update.Stats)
	c.mu.Unlock()
	c.changed()
}

func (c *Console) applyS3StatsUpdate(update *wire.S3StatsUpdate) {
	c.mu.Lock()
	c.stats.ApplyUploads(update.Stats)
	c.mu.Unlock()
	c.changed()
}

func (c *Console) applyOrchestratorStatus(status *wire.OrchestratorStatus) {
	c.mu.Lock()
	c.orchestrator.Apply(status)
	c.mu.Unlock()
	c.changed()
}

func (c *Console) applyPredictionStatus(status *wire.PredictionStatus) {
	c.mu.Lock()
	c.prediction.ApplyStatus(status)
	c.mu.Unlock()
	c.changed()
}

func (c *Console) applyPredictionResult(
	ctx context.Context,
	result *wire.PredictionResult,
) {
	c.mu.Lock()
	applied := c.prediction.ApplyResult(result)
	c.mu.Unlock()

	if !applied {
		c.log.staleResult(ctx, result.PredictedLabel)
		return
	}
	c.changed()
}

func (c *Console) applyPredictionProgress(progress *wire.PredictionProgress) {
	c.mu.Lock()
	c.prediction.ApplyProgress(progress.Progress)
	c.mu.Unlock()
	c.changed()
}
