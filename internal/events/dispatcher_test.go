package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var placed, changed int
	d.Subscribe(EventOrderPlaced, func(_ context.Context, _ Event) error {
		placed++
		return nil
	})
	d.Subscribe(EventOrderStatusChanged, func(_ context.Context, _ Event) error {
		changed++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPlaced}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPlaced}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderStatusChanged}))

	require.Equal(t, 2, placed)
	require.Equal(t, 1, changed)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventOrderPlaced, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventOrderPlaced, func(_ context.Context, _ Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPlaced}))
	require.True(t, second)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPlaced}))
}
