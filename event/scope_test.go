package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeCloseUnsubscribesOwnListeners(t *testing.T) {
	bus := newTestBus(t)
	scoped, outside := &recorder{}, &recorder{}
	bus.SubscribeFunc("evt", outside.handle)

	scope := bus.NewScope(nil)
	scope.SubscribeFunc("evt", scoped.handle)
	scope.SubscribeFunc("other", scoped.handle)
	scope.Publish("evt")
	require.Equal(t, 1, scoped.count())

	scope.Close()
	assert.True(t, scope.Closed())
	bus.Publish("evt")
	bus.Publish("other")

	assert.Equal(t, 1, scoped.count())
	assert.Equal(t, 2, outside.count())
	assert.Equal(t, []string{"evt"}, bus.EventNames())

	assert.NotPanics(t, scope.Close)
}

func TestScopeClosesWhenContextDone(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	scope := bus.NewScope(ctx)
	scope.SubscribeFunc("evt", func(...any) error { return nil })
	require.Equal(t, 1, bus.ListenerCount("evt"))

	cancel()
	assert.Eventually(t, scope.Closed, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool {
		return bus.ListenerCount("evt") == 0
	}, time.Second, time.Millisecond)
}

func TestScopeClosedWhileSubscribing(t *testing.T) {
	bus := newTestBus(t)
	scope := bus.NewScope(nil)
	calls := 0
	scope.SubscribeFunc("evt", func(args ...any) error {
		calls++
		if len(args) == 0 {
			scope.Close()
		}
		return nil
	}, WithImmediate())

	assert.True(t, scope.Closed())
	assert.Equal(t, 0, bus.ListenerCount("evt"))
	bus.Publish("evt", "after")
	assert.Equal(t, 1, calls)
}

func TestScopeSubscribeAfterCloseIgnored(t *testing.T) {
	bus := newTestBus(t)
	scope := bus.NewScope(nil)
	scope.Close()

	assert.NotNil(t, scope.SubscribeFunc("late", func(...any) error { return nil }))
	assert.Equal(t, 0, bus.ListenerCount("late"))
	assert.Equal(t, 1, bus.logs.FilterMessage("subscribe on closed scope ignored").Len())
}

func TestScopeUnsubscribeForgetsListener(t *testing.T) {
	bus := newTestBus(t)
	scope := bus.NewScope(nil)
	rec := &recorder{}
	l := scope.SubscribeFunc("evt", rec.handle)

	scope.Unsubscribe("evt", l)
	assert.Empty(t, scope.subs)

	// re-subscribed directly on the bus, so closing the scope must leave it alone
	bus.Subscribe("evt", l)
	scope.Close()
	bus.Publish("evt")
	assert.Equal(t, 1, rec.count())
}

func TestScopeClearResetsBus(t *testing.T) {
	bus := newTestBus(t)
	scope := bus.NewScope(nil)
	rec := &recorder{}
	bus.SubscribeFunc("evt", rec.handle)

	scope.Clear()
	bus.Publish("evt")
	assert.Equal(t, 0, rec.count())
}
