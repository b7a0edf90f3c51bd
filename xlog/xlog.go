package xlog

import (
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootLogger atomic.Pointer[zLogger]
	initOnce   sync.Once
)

func setRoot(l *zLogger) {
	rootLogger.Store(l)
}

func root() *zLogger {
	if l := rootLogger.Load(); l != nil {
		return l
	}
	initOnce.Do(func() {
		if rootLogger.Load() == nil {
			initDefaultLogger()
		}
	})
	return rootLogger.Load()
}

// Default 返回根logger, 供需要注入 ILogger 的组件使用
func Default() ILogger {
	// 直接调用方法比包级函数少一层
	return newzLogger(root().logger.WithOptions(zap.AddCallerSkip(-1)))
}

// Errorw 输出定制化的"Error"级别日志信息；
func Errorw(msg string, keysAndValues ...any) {
	root().Errorw(msg, keysAndValues...)
}

// Errorx 以zapfield方式，极速输出定制化的"Error"级别日志信息；
func Errorx(msg string, fields ...zapcore.Field) {
	root().Errorx(msg, fields...)
}
