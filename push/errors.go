package push

import "fmt"

// ClientState represents the lifecycle state of the push client.
type ClientState byte

const (
	NotStarted ClientState = iota
	Started
)

func (s ClientState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Started:
		return "started"
	default:
		return "unknown"
	}
}

// ClientStateError indicates that an operation was attempted in a lifecycle
// state that does not permit it.
type ClientStateError struct {
	State ClientState
}

func (e *ClientStateError) Error() string {
	switch e.State {
	case NotStarted:
		return "client not started"
	case Started:
		return "client already started"
	default:
		return "invalid client state"
	}
}

// ConnectionError wraps errors that prevented the push channel from being
// established.
type ConnectionError struct {
	wrapped error
	message string
}

func (e *ConnectionError) Error() string {
	if e.wrapped == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.wrapped)
}

func (e *ConnectionError) Unwrap() error {
	return e.wrapped
}
