// Package wire defines the messages exchanged with the orchestrator: the
// typed events of the push channel and the payloads of the control channel.
package wire

import (
	"encoding/json"
	"fmt"
)

// EventType is the type tag carried by every push-channel frame.
type EventType string

const (
	EventSensorStatus       EventType = "sensor_status"
	EventActivityUpdate     EventType = "activity_update"
	EventStatsUpdate        EventType = "stats_update"
	EventS3StatsUpdate      EventType = "s3_stats_update"
	EventOrchestratorStatus EventType = "orchestrator_status"
	EventPredictionStatus   EventType = "prediction_status"
	EventPredictionResult   EventType = "prediction_result"
	EventPredictionProgress EventType = "prediction_progress"
)

// Actions carried by ActivityUpdate events.
const (
	ActionStarted = "started"
	ActionStopped = "stopped"
)

type (
	// Event is implemented by all push-channel event payloads.
	Event interface {
		EventType() EventType
	}

	// SensorStatus reports connectivity and a partial set of counters for one
	// sensor slot. Absent counters retain their last known values.
	SensorStatus struct {
		SensorType string         `json:"sensor_type"`
		Status     string         `json:"status"`
		Data       map[string]any `json:"data"`
	}

	// ActivityUpdate announces a recording transition made by the
	// orchestrator, keyed by activity ID.
	ActivityUpdate struct {
		Action     string `json:"action"`
		ActivityID string `json:"activity_id"`
	}

	// StatsUpdate carries a partial update of the cumulative pipeline
	// counters.
	StatsUpdate struct {
		Stats map[string]any `json:"stats"`
	}

	// S3StatsUpdate carries a partial update of the upload counters.
	S3StatsUpdate struct {
		Stats map[string]any `json:"stats"`
	}

	// OrchestratorStatus reports the orchestrator's own readiness.
	OrchestratorStatus struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	// PredictionStatus mirrors the orchestrator's prediction pipeline state.
	// CurrentPrediction is nil when the frame carries no new result.
	PredictionStatus struct {
		IsActive               bool              `json:"is_active"`
		WaitingForRFID         bool              `json:"waiting_for_rfid"`
		CollectingData         bool              `json:"collecting_data"`
		DataCollectionProgress float64           `json:"data_collection_progress"`
		CurrentPrediction      *PredictionResult `json:"current_prediction,omitempty"`
	}

	// PredictionResult is a completed inference outcome.
	PredictionResult struct {
		PredictedLabel string    `json:"predicted_label"`
		Confidence     float64   `json:"confidence"`
		Users          int       `json:"n_users"`
		Timestamp      Timestamp `json:"timestamp"`
	}

	// PredictionProgress updates only the data collection progress.
	PredictionProgress struct {
		Progress float64 `json:"progress"`
	}

	// UnknownEvent preserves a frame whose type tag is not recognized, so
	// callers can log and drop it without treating the frame as malformed.
	UnknownEvent struct {
		Type EventType
		Raw  json.RawMessage
	}

	// Activity is a labeled recording category defined by the orchestrator.
	Activity struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		CreatedAt   Timestamp `json:"created_at"`
	}
)

func (SensorStatus) EventType() EventType       { return EventSensorStatus }
func (ActivityUpdate) EventType() EventType     { return EventActivityUpdate }
func (StatsUpdate) EventType() EventType        { return EventStatsUpdate }
func (S3StatsUpdate) EventType() EventType      { return EventS3StatsUpdate }
func (OrchestratorStatus) EventType() EventType { return EventOrchestratorStatus }
func (PredictionStatus) EventType() EventType   { return EventPredictionStatus }
func (PredictionResult) EventType() EventType   { return EventPredictionResult }
func (PredictionProgress) EventType() EventType { return EventPredictionProgress }
func (e UnknownEvent) EventType() EventType     { return e.Type }

// Decode parses a single push-channel frame into its typed event.
func Decode(data []byte) (Event, error) {
	var env struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{message: "malformed frame", wrapped: err}
	}

	var ev Event
	switch env.Type {
	case EventSensorStatus:
		ev = &SensorStatus{}
	case EventActivityUpdate:
		ev = &ActivityUpdate{}
	case EventStatsUpdate:
		ev = &StatsUpdate{}
	case EventS3StatsUpdate:
		ev = &S3StatsUpdate{}
	case EventOrchestratorStatus:
		ev = &OrchestratorStatus{}
	case EventPredictionStatus:
		ev = &PredictionStatus{}
	case EventPredictionResult:
		ev = &PredictionResult{}
	case EventPredictionProgress:
		ev = &PredictionProgress{}
	default:
		return &UnknownEvent{Type: env.Type, Raw: data}, nil
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, &DecodeError{
			message: fmt.Sprintf("malformed %s payload", env.Type),
			wrapped: err,
		}
	}
	return ev, nil
}

// Encode renders an event as a push-channel frame with its type tag.
func Encode(ev Event) ([]byte, error) {
	if u, ok := ev.(*UnknownEvent); ok {
		return u.Raw, nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	frame := make(map[string]json.RawMessage)
	if err := json.Unmarshal(payload, &frame); err != nil {
		return nil, err
	}
	frame["type"], err = json.Marshal(ev.EventType())
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame)
}

// DecodeError indicates that a push-channel frame could not be parsed. It may
// wrap an underlying error using Go standard error wrapping.
type DecodeError struct {
	wrapped error
	message string
}

func (e *DecodeError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *DecodeError) Unwrap() error {
	return e.wrapped
}
