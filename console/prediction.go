package console

import "github.com/RodCaba/fp-orchestrator/wire"

// PredictionPhase is the locally mirrored phase of the orchestrator's
// prediction pipeline.
type PredictionPhase int

const (
	PredictionInactive PredictionPhase = iota
	PredictionWaiting
	PredictionCollecting
	PredictionResult
)

func (p PredictionPhase) String() string {
	switch p {
	case PredictionWaiting:
		return "waiting"
	case PredictionCollecting:
		return "collecting"
	case PredictionResult:
		return "result"
	default:
		return "inactive"
	}
}

// Prediction tracks prediction mode as mirrored from the orchestrator.
// Callers serialize access.
type Prediction struct {
	active     bool
	phase      PredictionPhase
	progress   float64
	lastResult *wire.PredictionResult
}

func NewPrediction() *Prediction {
	return &Prediction{}
}

// Active reports whether prediction mode is on.
func (p *Prediction) Active() bool {
	return p.active
}

// Phase returns the mirrored pipeline phase.
func (p *Prediction) Phase() PredictionPhase {
	return p.phase
}

// Progress returns the data collection progress in [0, 1].
func (p *Prediction) Progress() float64 {
	return p.progress
}

// LastResult returns the most recent prediction, or nil when none is held.
func (p *Prediction) LastResult() *wire.PredictionResult {
	if p.lastResult == nil {
		return nil
	}
	result := *p.lastResult
	return &result
}

// Start marks the pipeline active after a successful start command. The
// pipeline waits for a trigger until the orchestrator reports collection.
func (p *Prediction) Start() {
	p.active = true
	p.phase = PredictionWaiting
	p.progress = 0
}

// Stop clears the pipeline, including any held result.
func (p *Prediction) Stop() {
	p.active = false
	p.phase = PredictionInactive
	p.progress = 0
	p.lastResult = nil
}

// ApplyStatus merges a status push into the mirrored state. An inactive
// status clears everything; an active status without a current prediction
// leaves a previously received result undisturbed. A carried prediction
// updates the held result, but the collection flags decide the phase: the
// orchestrator keeps reporting the previous prediction while the next
// cycle collects.
func (p *Prediction) ApplyStatus(status *wire.PredictionStatus) {
	if !status.IsActive {
		p.Stop()
		return
	}

	p.active = true
	p.progress = status.DataCollectionProgress

	if status.CurrentPrediction != nil {
		result := *status.CurrentPrediction
		p.lastResult = &result
	}

	switch {
	case status.CollectingData:
		p.phase = PredictionCollecting
	case status.WaitingForRFID:
		p.phase = PredictionWaiting
	case p.lastResult != nil:
		p.phase = PredictionResult
	default:
		p.phase = PredictionWaiting
	}
}

// ApplyResult stores a prediction pushed outside a status frame. Results
// arriving while the pipeline is inactive are ignored as stale.
func (p *Prediction) ApplyResult(result *wire.PredictionResult) bool {
	if !p.active {
		return false
	}
	held := *result
	p.lastResult = &held
	p.phase = PredictionResult
	return true
}

// ApplyProgress updates collection progress without touching the phase.
func (p *Prediction) ApplyProgress(progress float64) {
	p.progress = progress
}
