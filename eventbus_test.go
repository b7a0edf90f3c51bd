package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildmap/eventbus/event"
	"github.com/wildmap/eventbus/xtime"
)

func TestNewWiresBusAndScope(t *testing.T) {
	clock := xtime.NewManualScheduler(time.Unix(0, 0))
	bus := New(event.WithScheduler(clock))

	var got []any
	ctx, cancel := context.WithCancel(context.Background())
	scope := bus.Scope(ctx)
	scope.SubscribeFunc("tick", func(args ...any) error {
		got = append(got, args...)
		return nil
	}, event.WithThrottle(time.Second))

	bus.Publish("tick", 1)
	bus.Publish("tick", 2)
	clock.Advance(time.Second)
	bus.Publish("tick", 3)
	assert.Equal(t, []any{1, 3}, got)

	cancel()
	assert.Eventually(t, func() bool {
		return bus.ListenerCount("tick") == 0
	}, time.Second, time.Millisecond)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("EVENTBUS_MAX_LISTENERS", "3")
	bus, err := NewFromEnv()
	require.NoError(t, err)
	require.NotNil(t, bus)

	t.Setenv("EVENTBUS_MAX_LISTENERS", "x")
	_, err = NewFromEnv()
	assert.Error(t, err)
}
