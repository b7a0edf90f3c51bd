package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerOptionsDefaults(t *testing.T) {
	o := newListenerOptions()
	assert.Equal(t, ListenerOptions{}, o)

	o = newListenerOptions(WithPriority(3), WithOnce(), WithImmediate(), WithDebounce(-time.Second), WithThrottle(time.Second), nil)
	assert.Equal(t, ListenerOptions{
		Priority:  3,
		Once:      true,
		Immediate: true,
		Throttle:  time.Second,
	}, o)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxListeners, cfg.MaxListeners)

	t.Setenv("EVENTBUS_MAX_LISTENERS", "5")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxListeners)

	t.Setenv("EVENTBUS_MAX_LISTENERS", "many")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestWithConfig(t *testing.T) {
	bus := newTestBus(t, WithConfig(Config{MaxListeners: 1}))
	assert.Equal(t, 1, bus.maxListeners)
}
