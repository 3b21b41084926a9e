package console_test

import (
	"testing"
	"time"

	"github.com/RodCaba/fp-orchestrator/console"
	"github.com/RodCaba/fp-orchestrator/internal/wallclock/clocktest"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/stretchr/testify/require"
)

func TestStatsNestedMerge(t *testing.T) {
	s := console.NewStats()

	s.ApplyPipeline(map[string]any{
		"imu":   map[string]any{"batches_received": 10},
		"audio": map[string]any{"features_processed": 3},
	})
	s.ApplyPipeline(map[string]any{
		"imu": map[string]any{"batches_received": 12},
	})

	pipeline := s.Pipeline()
	imu := pipeline["imu"].(map[string]any)
	require.Equal(t, 12, imu["batches_received"])

	// Sections absent from the partial update stay as reported.
	audio := pipeline["audio"].(map[string]any)
	require.Equal(t, 3, audio["features_processed"])
}

func TestStatsScalarOverwrite(t *testing.T) {
	s := console.NewStats()

	s.ApplyUploads(map[string]any{
		"totalUploads":   2,
		"pendingUploads": 1,
	})
	s.ApplyUploads(map[string]any{
		"totalUploads": 3,
	})

	uploads := s.Uploads()
	require.Equal(t, 3, uploads["totalUploads"])
	require.Equal(t, 1, uploads["pendingUploads"])
}

func TestStatsNonNumericValues(t *testing.T) {
	s := console.NewStats()

	s.ApplyPipeline(map[string]any{
		"rfid": map[string]any{"last_signal": "tag-7"},
	})

	rfid := s.Pipeline()["rfid"].(map[string]any)
	require.Equal(t, "tag-7", rfid["last_signal"])
}

func TestStatsCopyIsolation(t *testing.T) {
	s := console.NewStats()
	s.ApplyPipeline(map[string]any{
		"imu": map[string]any{"batches_received": 1},
	})

	copied := s.Pipeline()
	copied["imu"].(map[string]any)["batches_received"] = 99

	fresh := s.Pipeline()
	require.Equal(t, 1, fresh["imu"].(map[string]any)["batches_received"])
}

func TestOrchestratorMirror(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	clocktest.Install(t, now)

	o := console.NewOrchestrator()
	require.Empty(t, o.Status())
	require.Zero(t, o.UpdatedAt())

	o.Apply(&wire.OrchestratorStatus{
		Status:  "ready",
		Message: "Recording activity: Cooking",
	})
	require.Equal(t, "ready", o.Status())
	require.Equal(t, "Recording activity: Cooking", o.Message())
	require.Equal(t, now, o.UpdatedAt())
}
