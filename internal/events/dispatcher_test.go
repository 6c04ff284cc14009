package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee126/DSAR-sub009/internal/events"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()

	var got []string
	d.Subscribe(events.EventCaseTransitioned, func(_ context.Context, e events.Event) error {
		got = append(got, e.CaseID)
		return nil
	})
	d.Subscribe(events.EventCaseTransitioned, func(_ context.Context, e events.Event) error {
		got = append(got, e.CaseID+"/second")
		return nil
	})

	err := d.Publish(context.Background(), events.Event{
		Type:   events.EventCaseTransitioned,
		CaseID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c1/second"}, got)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()

	called := false
	d.Subscribe(events.EventCaseCreated, func(context.Context, events.Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventDeadlineExtended}))
	assert.False(t, called)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()

	var delivered int
	d.Subscribe(events.EventCaseCreated, func(context.Context, events.Event) error {
		delivered++
		return errors.New("handler failed")
	})
	d.Subscribe(events.EventCaseCreated, func(context.Context, events.Event) error {
		delivered++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventCaseCreated}))
	assert.Equal(t, 2, delivered)
}
