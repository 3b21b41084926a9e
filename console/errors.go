package console

import "fmt"

// AlreadyStartedError indicates Start was called more than once.
type AlreadyStartedError struct{}

func (e *AlreadyStartedError) Error() string {
	return "console already started"
}

// ValidationError indicates input rejected before any orchestrator call.
type ValidationError struct {
	message string
	wrapped error
}

func (e *ValidationError) Error() string {
	if e.wrapped == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.wrapped
}

// AlreadyExistsError indicates an activity name already present in the
// catalog, compared case-insensitively.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Activity '%s' already exists.", e.Name)
}

// NotFoundError indicates an activity name missing from the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Activity '%s' not found.", e.Name)
}

// AlreadyRecordingError indicates a start while a session is running.
type AlreadyRecordingError struct {
	// Name is the activity currently being recorded.
	Name string
}

func (e *AlreadyRecordingError) Error() string {
	return fmt.Sprintf("Activity '%s' is already being recorded.", e.Name)
}

// UnknownSensorError indicates a status push for a sensor outside the fixed
// set.
type UnknownSensorError struct {
	Name string
}

func (e *UnknownSensorError) Error() string {
	return fmt.Sprintf("unknown sensor type %q", e.Name)
}
