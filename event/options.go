package event

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/wildmap/eventbus/xlog"
	"github.com/wildmap/eventbus/xtime"
)

// DefaultMaxListeners 单个事件的监听器数量告警阈值
const DefaultMaxListeners = 20

// ListenerOptions 订阅选项
//
// Debounce 与 Throttle 同时设置时 Debounce 生效, 负数视为 0
type ListenerOptions struct {
	Priority  int           // 值越大越先执行, 默认 0
	Once      bool          // 第一次经由 Publish 触发后自动取消订阅
	Immediate bool          // 订阅时立即以空参数执行一次, Once 为 true 时不执行
	Debounce  time.Duration // 防抖间隔, 只执行静默期后的最后一次调用
	Throttle  time.Duration // 节流间隔, 首次调用立即执行, 冷却期内的调用被丢弃
}

// Option 订阅选项设置函数
type Option func(*ListenerOptions)

// WithPriority 设置优先级
func WithPriority(priority int) Option {
	return func(o *ListenerOptions) {
		o.Priority = priority
	}
}

// WithOnce 只执行一次后自动取消订阅
func WithOnce() Option {
	return func(o *ListenerOptions) {
		o.Once = true
	}
}

// WithImmediate 订阅时立即执行一次
func WithImmediate() Option {
	return func(o *ListenerOptions) {
		o.Immediate = true
	}
}

// WithDebounce 防抖
func WithDebounce(d time.Duration) Option {
	return func(o *ListenerOptions) {
		o.Debounce = d
	}
}

// WithThrottle 节流
func WithThrottle(d time.Duration) Option {
	return func(o *ListenerOptions) {
		o.Throttle = d
	}
}

// WithOptions 整体替换订阅选项
func WithOptions(opts ListenerOptions) Option {
	return func(o *ListenerOptions) {
		*o = opts
	}
}

func newListenerOptions(opts ...Option) ListenerOptions {
	var o ListenerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.Debounce = max(o.Debounce, 0)
	o.Throttle = max(o.Throttle, 0)
	return o
}

// ------------------------------------------------------------------------------

// Config Bus 配置, 可从环境变量加载
type Config struct {
	// MaxListeners 单个事件监听器数量超过该值时输出告警, <= 0 关闭告警
	MaxListeners int `env:"EVENTBUS_MAX_LISTENERS" envDefault:"20"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{MaxListeners: DefaultMaxListeners}
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("event: load config: %w", err)
	}
	return cfg, nil
}

// ErrorHandler 监听器错误处理函数
type ErrorHandler func(eventName string, err error)

// BusOption Bus 构造选项
type BusOption func(*Bus)

// WithConfig 使用配置
func WithConfig(cfg Config) BusOption {
	return func(b *Bus) {
		b.maxListeners = cfg.MaxListeners
	}
}

// WithMaxListeners 设置监听器数量告警阈值
func WithMaxListeners(n int) BusOption {
	return func(b *Bus) {
		b.maxListeners = n
	}
}

// WithErrorHandler 设置错误处理函数, nil 表示使用默认的日志输出
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *Bus) {
		b.errorHandler = h
	}
}

// WithScheduler 设置 debounce/throttle 使用的调度器
func WithScheduler(s xtime.Scheduler) BusOption {
	return func(b *Bus) {
		if s != nil {
			b.scheduler = s
		}
	}
}

// WithLogger 设置日志
func WithLogger(l xlog.ILogger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}
