package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
	"github.com/RodCaba/fp-orchestrator/wire"
)

// RefreshActivities reloads the catalog from the orchestrator.
func (c *Console) RefreshActivities(ctx context.Context) error {
	activities, err := c.control.ListActivities(ctx)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return err
	}

	c.mu.Lock()
	c.catalog.Replace(activities)
	c.mu.Unlock()
	c.changed()
	return nil
}

// CreateActivity validates and defines a new activity. Empty and duplicate
// names are rejected before any orchestrator call.
func (c *Console) CreateActivity(
	ctx context.Context,
	name string,
	description string,
) (*wire.Activity, error) {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		err := &ValidationError{message: "activity name must not be empty"}
		c.Notify(err.Error(), SeverityWarning)
		return nil, err
	}

	c.mu.Lock()
	_, exists := c.catalog.ByName(name)
	c.mu.Unlock()
	if exists {
		err := &AlreadyExistsError{Name: name}
		c.Notify(err.Error(), SeverityWarning)
		return nil, err
	}

	created, err := c.control.CreateActivity(ctx, name, description)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return nil, err
	}

	c.mu.Lock()
	c.catalog.Add(*created)
	c.mu.Unlock()
	c.changed()

	c.Notify(fmt.Sprintf("Activity '%s' created", created.Name), SeveritySuccess)
	return created, nil
}

// StartSession begins recording the named activity. The session opens only
// when the orchestrator accepts the start. If prediction mode is active it
// is stopped first; recording and prediction never run together.
func (c *Console) StartSession(ctx context.Context, name string) error {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	c.mu.Lock()
	if current := c.session.Activity(); current != nil {
		c.mu.Unlock()
		err := &AlreadyRecordingError{Name: current.Name}
		c.Notify(err.Error(), SeverityWarning)
		return err
	}
	activity, ok := c.catalog.ByName(name)
	if !ok {
		c.mu.Unlock()
		err := &NotFoundError{Name: name}
		c.Notify(err.Error(), SeverityWarning)
		return err
	}
	predicting := c.prediction.Active()
	if predicting {
		c.prediction.Stop()
	}
	c.mu.Unlock()

	if predicting {
		c.changed()
		if _, err := c.control.StopPrediction(ctx); err != nil {
			c.Notify(err.Error(), SeverityError)
		}
	}

	message, err := c.control.StartActivity(ctx, activity.Name)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return err
	}

	c.mu.Lock()
	err = c.session.Start(activity, wallclock.Instance.Now())
	if err == nil {
		c.elapsed = IdleElapsed
	}
	c.mu.Unlock()

	if err != nil {
		// A push opened the session while the command was in flight; the
		// two paths converged on the same state.
		c.log.staleSession(ctx, activity.ID)
	} else {
		c.changed()
	}

	c.Notify(message, SeveritySuccess)
	return nil
}

// StopSession ends the running recording session. The local session clears
// even when the orchestrator rejects the stop, so the operator is never
// stuck in a session they cannot exit. Stopping while idle is a no-op.
func (c *Console) StopSession(ctx context.Context) error {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	c.mu.Lock()
	if !c.session.Recording() {
		c.mu.Unlock()
		return nil
	}
	c.session.Stop()
	c.elapsed = IdleElapsed
	c.mu.Unlock()
	c.changed()

	message, err := c.control.StopActivity(ctx)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return err
	}

	c.Notify(message, SeveritySuccess)
	return nil
}

// StartPrediction puts the rig into prediction mode. A running recording
// session is stopped first; recording and prediction never run together.
// Orchestrator rejections are surfaced as sent.
func (c *Console) StartPrediction(ctx context.Context) error {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	c.mu.Lock()
	recording := c.session.Recording()
	if recording {
		c.session.Stop()
		c.elapsed = IdleElapsed
	}
	c.mu.Unlock()

	if recording {
		c.changed()
		if _, err := c.control.StopActivity(ctx); err != nil {
			c.Notify(err.Error(), SeverityError)
		}
	}

	message, err := c.control.StartPrediction(ctx)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return err
	}

	c.mu.Lock()
	c.prediction.Start()
	c.mu.Unlock()
	c.changed()

	c.Notify(message, SeveritySuccess)
	return nil
}

// StopPrediction leaves prediction mode. The local pipeline clears even
// when the orchestrator rejects the stop. Stopping while inactive is a
// no-op.
func (c *Console) StopPrediction(ctx context.Context) error {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	c.mu.Lock()
	active := c.prediction.Active()
	if active {
		c.prediction.Stop()
	}
	c.mu.Unlock()

	if !active {
		return nil
	}
	c.changed()

	message, err := c.control.StopPrediction(ctx)
	if err != nil {
		c.Notify(err.Error(), SeverityError)
		return err
	}

	c.Notify(message, SeveritySuccess)
	return nil
}
