package xlog

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/DeRuina/timberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// levelController 日志输出基本控制器
	levelController = zap.NewAtomicLevelAt(zap.DebugLevel)
)

// initDefaultLogger 在没有外部调用Setup进行日志库设置的情况下，进行默认的日志库配置；
func initDefaultLogger() {
	SetupLogger("")
}

// CloseLogger 系统运行结束时，将日志落盘；
func CloseLogger() {
	if l := root(); l != nil {
		_ = l.Sync()
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		CallerKey:     "line", // 打印文件名和行数
		LevelKey:      "level",
		MessageKey:    "message",
		TimeKey:       "time",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(t.Format("2006-01-02 15:04:05.999"))
		},
		EncodeLevel: func(level zapcore.Level, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(strings.ToTitle(level.String()))
		},
		EncodeCaller: func(caller zapcore.EntryCaller, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString("[" + caller.TrimmedPath() + "]")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// SetupLogger 设置根logger, logfile 为空时输出到标准错误, 否则输出到滚动切割文件
func SetupLogger(logfile string) {
	encoder := zapcore.NewConsoleEncoder(encoderConfig())

	var out zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if logfile != "" {
		out = zapcore.AddSync(fileWriter(logfile))
	}
	core := zapcore.NewCore(encoder, out, levelController)

	// 包级函数多一层调用, 上跳2层定位到业务调用点
	_zLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
	setRoot(newzLogger(_zLogger))
}

// SetLevel 调整日志级别
func SetLevel(l zapcore.Level) {
	levelController.SetLevel(l)
}

func fileWriter(path string) io.Writer {
	return &timberjack.Logger{
		Filename:         path,                  // 日志文件路径
		MaxBackups:       7,                     // 最多保留7个备份
		MaxSize:          50,                    // 日志文件最大M
		MaxAge:           7,                     // 最大保存天数
		Compression:      "none",                // 压缩方式, none, gzip, zstd
		LocalTime:        true,                  // 是否使用本地时间
		RotationInterval: 24 * time.Hour,        // 日志轮转时间间隔
		BackupTimeFormat: "2006-01-02-15-04-05", // 日志轮转时间格式
	}
}
