package xtime

import (
	"time"

	"go.uber.org/atomic"
)

var (
	// LocalTime 是否使用本地时间（false表示使用UTC）
	LocalTime = false

	// useOffset 是否使用时间偏移
	useOffset atomic.Bool

	// offset 逻辑时间偏移量
	offset atomic.Duration
)

// SetUseOffset 设置是否使用时间偏移
func SetUseOffset(use bool) {
	useOffset.Store(use)
}

// SetOffset 设置时间偏移量
func SetOffset(dur time.Duration) {
	offset.Store(dur)
}

// AddOffset 增加时间偏移量
func AddOffset(dur time.Duration) {
	offset.Add(dur)
}

// ClearOffset 清除时间偏移
func ClearOffset() {
	offset.Store(0)
}

// GetOffset 获取当前时间偏移量
func GetOffset() time.Duration {
	return offset.Load()
}

// Now 获取当前时间（考虑时区和时间偏移）
func Now() time.Time {
	now := ToUTC(time.Now())
	if useOffset.Load() {
		return now.Add(offset.Load())
	}
	return now
}

// ToUTC 转换为UTC时间或保持本地时间
func ToUTC(t time.Time) time.Time {
	if LocalTime {
		return t
	}
	return t.UTC()
}
