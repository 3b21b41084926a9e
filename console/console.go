// Package console implements the operator's live view of the activity
// recognition rig. It keeps a locally consistent snapshot of remote state
// (sensor connectivity, recording session, prediction pipeline, cumulative
// statistics) reconciled from the orchestrator's push channel, and issues
// control commands with optimistic local transitions.
package console

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RodCaba/fp-orchestrator/control"
	"github.com/RodCaba/fp-orchestrator/internal/handlers"
	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
	"github.com/RodCaba/fp-orchestrator/push"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/google/uuid"
)

// Console composes the state holders behind a single lock and reconciles
// them from the push channel and command results. Pushes and command
// responses may describe the same change in either order; every mutation
// converges regardless.
type Console struct {
	config Config

	control *control.Client
	push    *push.Client

	// mu guards the state holders below. cmd serializes control commands so
	// each one observes and mutates a settled state.
	mu  sync.Mutex
	cmd sync.Mutex

	catalog      *Catalog
	session      *Session
	prediction   *Prediction
	sensors      *Sensors
	stats        *Stats
	orchestrator *Orchestrator
	toasts       *Toasts
	metrics      map[string]any
	elapsed      string

	watchers *handlers.List[chan struct{}]

	started atomic.Bool
	cancel  context.CancelFunc

	log logger
}

// New composes a console from its config.
func New(config Config) *Console {
	config.setDefaults()

	console := &Console{
		config:       config,
		catalog:      NewCatalog(),
		session:      NewSession(),
		prediction:   NewPrediction(),
		sensors:      NewSensors(),
		stats:        NewStats(),
		orchestrator: NewOrchestrator(),
		toasts:       NewToasts(),
		elapsed:      IdleElapsed,
		watchers:     handlers.NewList[chan struct{}](),
	}

	console.control = control.NewClient(
		config.OrchestratorURL,
		control.WithTimeout(config.CommandTimeout),
		control.WithLogger(config.Logger),
	)
	console.push = push.NewClient(
		push.WebSocketConnection(config.OrchestratorURL, http.Header{}),
		push.WithReconnectInterval(config.ReconnectInterval),
		push.WithLogger(config.Logger),
	)

	console.log.Logger = log.Wrap(config.Logger)

	return console
}

// Start seeds the activity catalog, opens the push channel, and starts the
// session clock. The console runs until Stop is called or ctx is cancelled.
func (c *Console) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return &AlreadyStartedError{}
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	// A failed seed is surfaced as a notification; the catalog is fetched
	// again on the next successful connect.
	_ = c.RefreshActivities(ctx)

	c.push.RegisterMessageHandler(c.route)
	c.push.RegisterConnectEventHandler(func(ev *push.ConnectEvent) {
		c.Notify("Connected to orchestrator", SeveritySuccess)
		c.changed()
		if ev.Attempt > 1 {
			go func() { _ = c.RefreshActivities(ctx) }()
		}
	})
	c.push.RegisterDisconnectEventHandler(func(*push.DisconnectEvent) {
		c.Notify("Connection to orchestrator lost", SeverityError)
		c.changed()
	})

	if err := c.push.Start(ctx); err != nil {
		cancel()
		return err
	}

	go c.runClock(ctx, wallclock.Instance.NewTicker(c.config.ClockTick))
	if c.config.MetricsPollInterval > 0 {
		go c.pollMetrics(
			ctx,
			wallclock.Instance.NewTicker(c.config.MetricsPollInterval),
		)
	}

	return nil
}

// Stop tears the console down. Stop before Start is a no-op.
func (c *Console) Stop() {
	if !c.started.Load() {
		return
	}
	c.cancel()
	c.push.Stop()
}

// Connection returns the push channel state.
func (c *Console) Connection() push.ConnectionState {
	return c.push.State()
}

// Watch returns a channel that signals whenever console state changes, plus
// a function to stop watching. Signals are coalesced; one pending signal
// covers any number of changes.
func (c *Console) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	done := c.watchers.Append(ch)
	return ch, done
}

func (c *Console) changed() {
	for ch := range c.watchers.All() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Notify enqueues a toast and schedules its removal after the display
// window. Each toast expires on its own timer.
func (c *Console) Notify(text string, severity Severity) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Text:      text,
		Severity:  severity,
		CreatedAt: wallclock.Instance.Now(),
	}

	c.mu.Lock()
	c.toasts.Add(toast)
	c.mu.Unlock()
	c.changed()

	expire := wallclock.Instance.After(c.config.ToastTTL)
	go func() {
		<-expire
		c.mu.Lock()
		removed := c.toasts.Remove(toast.ID)
		c.mu.Unlock()
		if removed {
			c.changed()
		}
	}()

	return toast
}

// runClock recomputes the session's elapsed display on each tick.
func (c *Console) runClock(ctx context.Context, ticker wallclock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			now := wallclock.Instance.Now()

			c.mu.Lock()
			display := IdleElapsed
			if c.session.Recording() {
				display = FormatElapsed(now.Sub(c.session.StartedAt()))
			}
			changed := display != c.elapsed
			c.elapsed = display
			c.mu.Unlock()

			if changed {
				c.changed()
			}
		}
	}
}

// pollMetrics periodically fetches the orchestrator's performance metrics.
func (c *Console) pollMetrics(ctx context.Context, ticker wallclock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			metrics, err := c.control.LatestMetrics(ctx)
			if err != nil {
				c.log.pollFailed(ctx, err)
				continue
			}
			c.mu.Lock()
			c.metrics = metrics
			c.mu.Unlock()
			c.changed()
		}
	}
}

type (
	// Snapshot is a point-in-time copy of the console's state.
	Snapshot struct {
		Connection   push.ConnectionState
		Activities   []wire.Activity
		Session      SessionSnapshot
		Prediction   PredictionSnapshot
		Sensors      []SensorStatus
		Stats        StatsSnapshot
		Orchestrator OrchestratorSnapshot
		Metrics      map[string]any
		Toasts       []Toast
	}

	// SessionSnapshot is the recording session's visible state.
	SessionSnapshot struct {
		Recording bool
		Activity  *wire.Activity
		StartedAt time.Time
		Elapsed   string
	}

	// PredictionSnapshot is the prediction pipeline's visible state.
	PredictionSnapshot struct {
		Active     bool
		Phase      PredictionPhase
		Progress   float64
		LastResult *wire.PredictionResult
	}

	// StatsSnapshot carries the accumulated counters.
	StatsSnapshot struct {
		Pipeline map[string]any
		Uploads  map[string]any
	}

	// OrchestratorSnapshot is the orchestrator's self-reported status.
	OrchestratorSnapshot struct {
		Status    string
		Message   string
		UpdatedAt time.Time
	}
)

// Snapshot returns a consistent copy of the console's state for rendering.
func (c *Console) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Connection: c.push.State(),
		Activities: c.catalog.All(),
		Session: SessionSnapshot{
			Recording: c.session.Recording(),
			Activity:  c.session.Activity(),
			StartedAt: c.session.StartedAt(),
			Elapsed:   c.elapsed,
		},
		Prediction: PredictionSnapshot{
			Active:     c.prediction.Active(),
			Phase:      c.prediction.Phase(),
			Progress:   c.prediction.Progress(),
			LastResult: c.prediction.LastResult(),
		},
		Sensors: c.sensors.All(),
		Stats: StatsSnapshot{
			Pipeline: c.stats.Pipeline(),
			Uploads:  c.stats.Uploads(),
		},
		Orchestrator: OrchestratorSnapshot{
			Status:    c.orchestrator.Status(),
			Message:   c.orchestrator.Message(),
			UpdatedAt: c.orchestrator.UpdatedAt(),
		},
		Metrics: maps.Clone(c.metrics),
		Toasts:  c.toasts.All(),
	}
}
