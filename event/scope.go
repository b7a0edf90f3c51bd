package event

import (
	"context"
	"sync"
)

type scopedSub struct {
	name     string
	listener *Listener
}

// Scope 生命周期绑定的订阅视图
//
// 通过 Scope 的订阅会在 Close 或 ctx 结束时自动取消, 其余操作直接转发给 Bus
type Scope struct {
	bus    *Bus
	mu     sync.Mutex
	subs   []scopedSub
	closed bool
	stop   func() bool
}

// NewScope 创建 Scope, ctx 结束时自动 Close; ctx 为 nil 时只能手动 Close
func (b *Bus) NewScope(ctx context.Context) *Scope {
	s := &Scope{bus: b}
	if ctx != nil {
		s.stop = context.AfterFunc(ctx, s.Close)
	}
	return s
}

// Subscribe 订阅并登记, Scope 关闭后的订阅被忽略
func (s *Scope) Subscribe(name string, l *Listener, opts ...Option) {
	if l == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.bus.logger.Warnw("subscribe on closed scope ignored", "event", name, "listener", l.id)
		return
	}
	s.subs = append(s.subs, scopedSub{name: name, listener: l})
	s.mu.Unlock()

	s.bus.Subscribe(name, l, opts...)

	// Close may have run between recording and registering
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.bus.Unsubscribe(name, l)
	}
}

// SubscribeFunc 快速订阅
func (s *Scope) SubscribeFunc(name string, handle Handler, opts ...Option) *Listener {
	l := NewListener(handle)
	if l == nil {
		return nil
	}
	s.Subscribe(name, l, opts...)
	return l
}

// Unsubscribe 取消订阅
func (s *Scope) Unsubscribe(name string, l *Listener) {
	s.mu.Lock()
	s.subs = deleteScopedSub(s.subs, name, l)
	s.mu.Unlock()

	s.bus.Unsubscribe(name, l)
}

// Publish 发布事件
func (s *Scope) Publish(name string, args ...any) {
	s.bus.Publish(name, args...)
}

// Clear 清空整个 Bus
func (s *Scope) Clear() {
	s.bus.Clear()
}

// Close 取消该 Scope 登记的全部订阅, 可重复调用
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	if s.stop != nil {
		s.stop()
	}
	for _, sub := range subs {
		s.bus.Unsubscribe(sub.name, sub.listener)
	}
}

// Closed 是否已关闭
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func deleteScopedSub(subs []scopedSub, name string, l *Listener) []scopedSub {
	kept := subs[:0]
	for _, sub := range subs {
		if sub.name == name && sub.listener == l {
			continue
		}
		kept = append(kept, sub)
	}
	clear(subs[len(kept):])
	return kept
}
