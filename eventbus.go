// Package eventbus 进程内事件总线
//
// 事件名对应按优先级排序的监听器集合, 监听器可附加 once/immediate/debounce/throttle,
// 单个监听器的错误和 panic 被隔离并交给错误处理函数.
//
//	bus := eventbus.New()
//	l := bus.SubscribeFunc("user.login", func(args ...any) error {
//	    return nil
//	}, event.WithPriority(10))
//	bus.Publish("user.login", uid)
//	bus.Unsubscribe("user.login", l)
package eventbus

import (
	"context"

	"github.com/wildmap/eventbus/event"
)

// EventBus Bus 与生命周期 Scope 的组合
type EventBus struct {
	*event.Bus
}

// New 创建事件总线
func New(opts ...event.BusOption) *EventBus {
	return &EventBus{Bus: event.NewBus(opts...)}
}

// NewFromEnv 从环境变量加载配置创建事件总线, opts 在配置之后应用
func NewFromEnv(opts ...event.BusOption) (*EventBus, error) {
	cfg, err := event.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(append([]event.BusOption{event.WithConfig(cfg)}, opts...)...), nil
}

// Scope 创建绑定 ctx 生命周期的订阅视图, ctx 结束时自动取消其中的订阅
func (e *EventBus) Scope(ctx context.Context) *event.Scope {
	return e.NewScope(ctx)
}
