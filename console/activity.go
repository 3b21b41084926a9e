package console

import (
	"slices"
	"strings"
	"time"

	"github.com/RodCaba/fp-orchestrator/wire"
)

type (
	// Catalog is the read-through cache of the orchestrator's activity
	// list, populated at startup and appended to on creation.
	Catalog struct {
		activities []wire.Activity
	}

	// Session tracks the active recording session. At most one session
	// exists at a time. Callers serialize access.
	Session struct {
		activity  *wire.Activity
		startedAt time.Time
	}
)

func NewCatalog() *Catalog {
	return &Catalog{}
}

// Replace swaps the cached list wholesale.
func (c *Catalog) Replace(activities []wire.Activity) {
	c.activities = slices.Clone(activities)
}

// Add appends a newly created activity to the cache.
func (c *Catalog) Add(activity wire.Activity) {
	c.activities = append(c.activities, activity)
}

// All returns the cached activities in orchestrator order.
func (c *Catalog) All() []wire.Activity {
	return slices.Clone(c.activities)
}

// ByID resolves an activity id against the cache.
func (c *Catalog) ByID(id string) (wire.Activity, bool) {
	for _, activity := range c.activities {
		if activity.ID == id {
			return activity, true
		}
	}
	return wire.Activity{}, false
}

// ByName resolves an activity name against the cache. Names are unique
// case-insensitively, so matching follows suit.
func (c *Catalog) ByName(name string) (wire.Activity, bool) {
	for _, activity := range c.activities {
		if strings.EqualFold(activity.Name, name) {
			return activity, true
		}
	}
	return wire.Activity{}, false
}

func NewSession() *Session {
	return &Session{}
}

// Recording reports whether a session is active.
func (s *Session) Recording() bool {
	return s.activity != nil
}

// Activity returns the recorded activity, or nil when idle.
func (s *Session) Activity() *wire.Activity {
	if s.activity == nil {
		return nil
	}
	activity := *s.activity
	return &activity
}

// StartedAt returns the session start time, zero when idle.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Start begins a session for the given activity. A second concurrent
// session is refused without altering the current one.
func (s *Session) Start(activity wire.Activity, at time.Time) error {
	if s.activity != nil {
		return &AlreadyRecordingError{Name: s.activity.Name}
	}
	s.activity = &activity
	s.startedAt = at
	return nil
}

// Stop clears the session. Safe to call when idle.
func (s *Session) Stop() {
	s.activity = nil
	s.startedAt = time.Time{}
}
