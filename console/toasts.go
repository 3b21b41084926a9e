package console

import (
	"slices"
	"time"
)

// Severity classifies a toast message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Toast is a short-lived diagnostic message shown to the operator.
type Toast struct {
	ID        string
	Text      string
	Severity  Severity
	CreatedAt time.Time
}

// Toasts is the queue of live toasts, oldest first. Each toast is removed
// on its own timer after the display window elapses; the queue imposes no
// depth cap. Callers serialize access.
type Toasts struct {
	toasts []Toast
}

func NewToasts() *Toasts {
	return &Toasts{}
}

// Add appends a toast to the queue.
func (t *Toasts) Add(toast Toast) {
	t.toasts = append(t.toasts, toast)
}

// Remove deletes the toast with the given id, reporting whether it was
// still queued.
func (t *Toasts) Remove(id string) bool {
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = slices.Delete(t.toasts, i, i+1)
			return true
		}
	}
	return false
}

// All returns the queued toasts, oldest first.
func (t *Toasts) All() []Toast {
	return slices.Clone(t.toasts)
}

// Len returns the queue depth.
func (t *Toasts) Len() int {
	return len(t.toasts)
}
