package console

import (
	"maps"
	"time"

	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
	"github.com/RodCaba/fp-orchestrator/wire"
)

// Stats accumulates the orchestrator's pipeline and upload counters from
// partial pushes. Callers serialize access.
type Stats struct {
	pipeline map[string]any
	uploads  map[string]any
}

func NewStats() *Stats {
	return &Stats{
		pipeline: map[string]any{},
		uploads:  map[string]any{},
	}
}

// ApplyPipeline merges counters from a stats_update push.
func (s *Stats) ApplyPipeline(partial map[string]any) {
	mergeCounters(s.pipeline, partial)
}

// ApplyUploads merges counters from an s3_stats_update push.
func (s *Stats) ApplyUploads(partial map[string]any) {
	mergeCounters(s.uploads, partial)
}

// Pipeline returns a copy of the accumulated pipeline counters.
func (s *Stats) Pipeline() map[string]any {
	return copyCounters(s.pipeline)
}

// Uploads returns a copy of the accumulated upload counters.
func (s *Stats) Uploads() map[string]any {
	return copyCounters(s.uploads)
}

// mergeCounters overlays only the keys present in the partial update.
// Nested maps merge key-wise one level down so a per-sensor section does
// not erase its siblings.
func mergeCounters(dst, partial map[string]any) {
	for key, value := range partial {
		next, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = map[string]any{}
			dst[key] = existing
		}
		for k, v := range next {
			existing[k] = v
		}
	}
}

func copyCounters(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			out[key] = maps.Clone(nested)
			continue
		}
		out[key] = value
	}
	return out
}

// Orchestrator mirrors the orchestrator's self-reported status banner.
// Callers serialize access.
type Orchestrator struct {
	status    string
	message   string
	updatedAt time.Time
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// Apply stores the latest status push.
func (o *Orchestrator) Apply(status *wire.OrchestratorStatus) {
	o.status = status.Status
	o.message = status.Message
	o.updatedAt = wallclock.Instance.Now()
}

// Status returns the last reported status value, e.g. "ready".
func (o *Orchestrator) Status() string {
	return o.status
}

// Message returns the last reported human-readable message.
func (o *Orchestrator) Message() string {
	return o.message
}

// UpdatedAt returns when the last status push arrived, zero before the
// first one.
func (o *Orchestrator) UpdatedAt() time.Time {
	return o.updatedAt
}
