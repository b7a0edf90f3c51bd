package event

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/wildmap/eventbus/xtime"
)

// wrap 先套 debounce/throttle, 再套 once
func (b *Bus) wrap(name string, l *Listener, o ListenerOptions) Handler {
	h := l.handle
	switch {
	case o.Debounce > 0:
		h = b.debounce(name, l, h, o.Debounce)
	case o.Throttle > 0:
		h = b.throttle(name, l, h, o.Throttle)
	}
	if o.Once {
		h = b.once(name, l, h)
	}
	return h
}

// debounce 每次调用取消尚未执行的调度, 静默 d 之后以最后一次调用的参数执行
func (b *Bus) debounce(name string, l *Listener, h Handler, d time.Duration) Handler {
	var (
		mu      sync.Mutex
		pending xtime.Timer
	)
	return func(args ...any) error {
		args = slices.Clone(args)

		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = b.scheduler.AfterFunc(d, func() {
			b.invoke(name, l, h, args)
		})
		return nil
	}
}

// throttle 首次调用立即执行并进入冷却, 冷却期间的调用直接丢弃
func (b *Bus) throttle(name string, l *Listener, h Handler, d time.Duration) Handler {
	var (
		throttled atomic.Bool
		until     atomic.Time // 冷却结束时间
	)
	return func(args ...any) error {
		if !throttled.CompareAndSwap(false, true) {
			b.logger.Debugw("throttled call dropped", "event", name, "listener", l.id, "until", until.Load())
			return nil
		}
		until.Store(b.scheduler.Now().Add(d))
		b.scheduler.AfterFunc(d, func() {
			throttled.Store(false)
		})
		return h(args...)
	}
}

// once 第一次调用后取消订阅, 回调出错或 panic 同样会被移除
func (b *Bus) once(name string, l *Listener, h Handler) Handler {
	var fired atomic.Bool
	return func(args ...any) error {
		// a concurrent or re-entrant publish may still hold this entry in its snapshot
		if !fired.CompareAndSwap(false, true) {
			return nil
		}
		defer b.Unsubscribe(name, l)
		return h(args...)
	}
}
