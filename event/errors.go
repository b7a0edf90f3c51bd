package event

import (
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

var (
	ErrListenerPanic = errors.New("event: listener panic")
)

// invoke 执行单个监听器, 错误和 panic 都不会传播给调用方
func (b *Bus) invoke(name string, l *Listener, h Handler, args []any) {
	defer func() {
		if r := recover(); r != nil {
			var err error
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrListenerPanic, e)
			} else {
				err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
			}
			b.logger.Errorx("listener panic",
				zap.String("event", name),
				zap.Uint64("listener", l.id),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			b.handleError(name, err)
		}
	}()

	if err := h(args...); err != nil {
		b.handleError(name, err)
	}
}

func (b *Bus) handleError(name string, err error) {
	if b.errorHandler == nil {
		b.logger.Errorw("error executing listener", "event", name, "error", err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("%s event error handler panic %v\n%s", name, r, string(debug.Stack()))
		}
	}()
	b.errorHandler(name, err)
}
