package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ ILogger = &zLogger{}

// ILogger 日志接口
type ILogger interface {
	Debugw(string, ...any)

	Warnw(string, ...any)

	Errorf(string, ...any)
	Errorw(string, ...any)
	Errorx(string, ...zapcore.Field)

	Enabled(level zapcore.Level) bool
	With(keysAndValues ...any) ILogger
}

type zLogger struct {
	logger  *zap.Logger
	slogger *zap.SugaredLogger
}

func newzLogger(logger *zap.Logger) *zLogger {
	return &zLogger{
		logger:  logger,
		slogger: logger.Sugar(),
	}
}

// NewLogger 使用已有的 zap.Logger 构造 ILogger, 测试中可配合 zaptest/observer 使用
func NewLogger(logger *zap.Logger) ILogger {
	return newzLogger(logger)
}

// Debugw 输出定制化的"Debug"级别日志信息；
func (z *zLogger) Debugw(msg string, keysAndValues ...any) {
	z.slogger.Debugw(msg, keysAndValues...)
}

// Warnw 输出定制化的"Warn"级别日志信息；
func (z *zLogger) Warnw(msg string, keysAndValues ...any) {
	z.slogger.Warnw(msg, keysAndValues...)
}

// Errorf 输出格式化的"Error"级别日志信息；
func (z *zLogger) Errorf(template string, args ...any) {
	z.slogger.Errorf(template, args...)
}

// Errorw 输出定制化的"Error"级别日志信息；
func (z *zLogger) Errorw(msg string, keysAndValues ...any) {
	z.slogger.Errorw(msg, keysAndValues...)
}

// Errorx 以zapfield方式，极速输出定制化的"Error"级别日志信息；
func (z *zLogger) Errorx(msg string, fields ...zapcore.Field) {
	z.logger.Error(msg, fields...)
}

// Sync 将zapLogger缓冲内容刷写到输出端
func (z *zLogger) Sync() error {
	return z.logger.Sync()
}

func (z *zLogger) Enabled(level zapcore.Level) bool {
	return z.logger.Core().Enabled(level)
}

// With 获取一个带固定字段的子logger
func (z *zLogger) With(keysAndValues ...any) ILogger {
	child := z.slogger.With(keysAndValues...)
	return &zLogger{
		logger:  child.Desugar(),
		slogger: child,
	}
}
