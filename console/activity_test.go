package console_test

import (
	"testing"
	"time"

	"github.com/RodCaba/fp-orchestrator/console"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	c := console.NewCatalog()
	c.Replace([]wire.Activity{
		{ID: "act-1", Name: "Cooking"},
		{ID: "act-2", Name: "Watching TV"},
	})

	activity, ok := c.ByID("act-2")
	require.True(t, ok)
	require.Equal(t, "Watching TV", activity.Name)

	_, ok = c.ByID("act-9")
	require.False(t, ok)

	// Names are unique case-insensitively; lookup follows suit.
	activity, ok = c.ByName("cooking")
	require.True(t, ok)
	require.Equal(t, "act-1", activity.ID)

	_, ok = c.ByName("Jogging")
	require.False(t, ok)
}

func TestCatalogAdd(t *testing.T) {
	c := console.NewCatalog()
	c.Add(wire.Activity{ID: "act-1", Name: "Talking"})

	all := c.All()
	require.Len(t, all, 1)
	require.Equal(t, "Talking", all[0].Name)
}

func TestCatalogReplaceRefreshes(t *testing.T) {
	c := console.NewCatalog()
	c.Replace([]wire.Activity{
		{ID: "act-1", Name: "Cooking"},
		{ID: "act-2", Name: "Watching TV"},
	})

	// A refresh carries the orchestrator's current list wholesale.
	c.Replace([]wire.Activity{
		{ID: "act-1", Name: "Cooking dinner"},
	})

	activity, ok := c.ByID("act-1")
	require.True(t, ok)
	require.Equal(t, "Cooking dinner", activity.Name)

	_, ok = c.ByID("act-2")
	require.False(t, ok)
	require.Len(t, c.All(), 1)
}

func TestSessionStartStop(t *testing.T) {
	s := console.NewSession()
	require.False(t, s.Recording())
	require.Nil(t, s.Activity())

	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(
		t,
		s.Start(wire.Activity{ID: "act-1", Name: "Cooking"}, started),
	)
	require.True(t, s.Recording())
	require.Equal(t, "Cooking", s.Activity().Name)
	require.Equal(t, started, s.StartedAt())

	s.Stop()
	require.False(t, s.Recording())
	require.True(t, s.StartedAt().IsZero())
}

func TestSessionRefusesSecondStart(t *testing.T) {
	s := console.NewSession()
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(
		t,
		s.Start(wire.Activity{ID: "act-1", Name: "Cooking"}, started),
	)

	err := s.Start(wire.Activity{ID: "act-2", Name: "Eating"}, started.Add(time.Minute))
	var already *console.AlreadyRecordingError
	require.ErrorAs(t, err, &already)
	require.Equal(t, "Cooking", already.Name)

	// The current session must be untouched.
	require.Equal(t, "Cooking", s.Activity().Name)
	require.Equal(t, started, s.StartedAt())
}

func TestSessionStopWhenIdle(t *testing.T) {
	s := console.NewSession()
	s.Stop()
	require.False(t, s.Recording())
}
