package event

import (
	"slices"
	"sync"

	"github.com/wildmap/eventbus/xlog"
	"github.com/wildmap/eventbus/xtime"
)

// Bus 事件分发器
//
// 注册表由互斥锁保护, 回调执行时不持有锁, 因此回调内可以再次订阅、取消订阅或发布事件
type Bus struct {
	mu           sync.Mutex
	listenerSets map[string]*listenerSet

	maxListeners int
	errorHandler ErrorHandler
	scheduler    xtime.Scheduler
	logger       xlog.ILogger
}

// NewBus 创建分发器
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		listenerSets: make(map[string]*listenerSet),
		maxListeners: DefaultMaxListeners,
		scheduler:    xtime.RealScheduler{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.logger == nil {
		b.logger = xlog.Default()
	}
	return b
}

// SubscribeFunc 快速订阅, 返回的 Listener 用于取消订阅
func (b *Bus) SubscribeFunc(name string, handle Handler, opts ...Option) *Listener {
	l := NewListener(handle)
	if l == nil {
		return nil
	}
	b.Subscribe(name, l, opts...)
	return l
}

// Subscribe 订阅事件
func (b *Bus) Subscribe(name string, l *Listener, opts ...Option) {
	if l == nil {
		return
	}

	o := newListenerOptions(opts...)
	wrapped := b.wrap(name, l, o)
	if o.Immediate && !o.Once {
		b.invoke(name, l, wrapped, nil)
	}

	b.mu.Lock()
	set, ok := b.listenerSets[name]
	if !ok {
		set = newListenerSet()
		b.listenerSets[name] = set
	}
	set.register(&listenerEntry{
		wrapped:  wrapped,
		original: l,
		priority: o.Priority,
	})
	count := set.Len()
	b.mu.Unlock()

	b.logger.Debugw("listener subscribed", "event", name, "listener", l.id, "priority", o.Priority, "count", count)
	if b.maxListeners > 0 && count > b.maxListeners {
		b.logger.Warnw("more listeners than allowed for event", "event", name, "count", count, "max", b.maxListeners)
	}
}

// Unsubscribe 取消订阅, 删除该监听器在此事件上的全部订阅
func (b *Bus) Unsubscribe(name string, l *Listener) {
	if l == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.listenerSets[name]
	if !ok {
		return
	}
	if set.unregister(l) == 0 {
		return
	}
	if set.Len() == 0 {
		delete(b.listenerSets, name)
	}
	b.logger.Debugw("listener unsubscribed", "event", name, "listener", l.id)
}

// Publish 发布事件, 按优先级从高到低同步执行监听器
func (b *Bus) Publish(name string, args ...any) {
	b.mu.Lock()
	set, ok := b.listenerSets[name]
	if !ok {
		b.mu.Unlock()
		return
	}
	entries := set.snapshot()
	b.mu.Unlock()

	for _, e := range entries {
		b.invoke(name, e.original, e.wrapped, args)
	}
}

// Clear 清空全部订阅
func (b *Bus) Clear() {
	b.mu.Lock()
	n := len(b.listenerSets)
	b.listenerSets = make(map[string]*listenerSet)
	b.mu.Unlock()

	b.logger.Debugw("event registry cleared", "events", n)
}

// ListenerCount 事件当前的订阅数量
func (b *Bus) ListenerCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if set, ok := b.listenerSets[name]; ok {
		return set.Len()
	}
	return 0
}

// EventNames 当前有订阅的事件名, 按字典序
func (b *Bus) EventNames() []string {
	b.mu.Lock()
	names := make([]string, 0, len(b.listenerSets))
	for name := range b.listenerSets {
		names = append(names, name)
	}
	b.mu.Unlock()

	slices.Sort(names)
	return names
}
