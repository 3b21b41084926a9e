// fp-console is a terminal monitor for the activity recognition rig. It
// mirrors orchestrator state into log lines and reacts to signals for
// shutdown; commands are issued through the console package API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RodCaba/fp-orchestrator/console"
	"github.com/lmittmann/tint"
)

func main() {
	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down...")
		cancel()
	}()

	if err := run(ctx, log); err != nil {
		log.Error("console exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	config, err := console.LoadConfig()
	if err != nil {
		return err
	}
	config.Logger = log

	c := console.New(config)
	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Stop()

	log.Info("console started", "orchestrator", config.OrchestratorURL)

	changes, done := c.Watch()
	defer done()

	seen := map[string]struct{}{}
	last := ""
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			snap := c.Snapshot()
			seen = logToasts(log, snap, seen)
			last = logState(log, snap, last)
		}
	}
}

// logToasts logs each toast once and returns the set of live toast IDs.
func logToasts(
	log *slog.Logger,
	snap console.Snapshot,
	seen map[string]struct{},
) map[string]struct{} {
	live := make(map[string]struct{}, len(snap.Toasts))
	for _, toast := range snap.Toasts {
		live[toast.ID] = struct{}{}
		if _, ok := seen[toast.ID]; ok {
			continue
		}
		switch toast.Severity {
		case console.SeverityError:
			log.Error(toast.Text)
		case console.SeverityWarning:
			log.Warn(toast.Text)
		default:
			log.Info(toast.Text)
		}
	}
	return live
}

// logState logs a status line when the rendered state changes.
func logState(log *slog.Logger, snap console.Snapshot, last string) string {
	activity := "-"
	if snap.Session.Activity != nil {
		activity = snap.Session.Activity.Name
	}

	line := strings.Join([]string{
		snap.Connection.String(),
		activity,
		snap.Session.Elapsed,
		snap.Prediction.Phase.String(),
		connectedSensors(snap.Sensors),
	}, "|")
	if line == last {
		return last
	}

	log.Info("state",
		"connection", snap.Connection,
		"activity", activity,
		"elapsed", snap.Session.Elapsed,
		"prediction", snap.Prediction.Phase,
		"sensors", connectedSensors(snap.Sensors),
	)
	return line
}

func connectedSensors(sensors []console.SensorStatus) string {
	names := make([]string, 0, len(sensors))
	for _, s := range sensors {
		if s.Connected {
			names = append(names, string(s.Type))
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
