package xtime

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wildmap/eventbus/xlog"
)

// Timer 延迟回调句柄
type Timer interface {
	// Stop 取消尚未触发的回调, 返回 true 表示成功阻止了回调
	Stop() bool
}

// Scheduler 延迟回调调度器
//
// debounce/throttle 通过它调度延迟执行, 测试中可以替换为 ManualScheduler 推进虚拟时间
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

var (
	_ Scheduler = RealScheduler{}
	_ Scheduler = &ManualScheduler{}
)

// RealScheduler 基于 time.AfterFunc 的调度器, 回调运行在独立的 goroutine 中
type RealScheduler struct{}

// AfterFunc 在 d 之后执行 f
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Now 当前时间
func (RealScheduler) Now() time.Time {
	return Now()
}

// ------------------------------------------------------------------------------

// ManualScheduler 虚拟时钟调度器
//
// 时间只在调用 Advance 时前进, 到期的回调在 Advance 的调用方 goroutine 中按到期顺序执行
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     atomic.Uint64
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	seq     uint64    // 调度顺序, 同一时刻到期时先调度的先执行
	due     time.Time // 到期时间
	f       func()
	stopped bool
}

// NewManualScheduler 创建虚拟时钟, 初始时间为 start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// AfterFunc 在虚拟时间 d 之后执行 f, d <= 0 时在下一次 Advance 中执行
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTimer{
		s:   s,
		seq: s.seq.Inc(),
		due: s.now.Add(max(d, 0)),
		f:   f,
	}
	s.pending = append(s.pending, t)
	return t
}

// Now 当前虚拟时间
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending 尚未触发的回调数量
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance 将虚拟时间推进 d, 并执行期间到期的全部回调
//
// 回调执行期间新调度且在窗口内到期的回调同样会被执行
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.popDue(end)
		if t == nil {
			break
		}
		t.fire()
	}

	s.mu.Lock()
	if s.now.Before(end) {
		s.now = end
	}
	s.mu.Unlock()
}

// popDue 取出最早到期且不晚于 end 的回调, 同时把时钟拨到它的到期时间
func (s *ManualScheduler) popDue(end time.Time) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	slices.SortStableFunc(s.pending, func(a, b *manualTimer) int {
		if n := a.due.Compare(b.due); n != 0 {
			return n
		}
		return cmp.Compare(a.seq, b.seq)
	})
	t := s.pending[0]
	if t.due.After(end) {
		return nil
	}
	s.pending[0] = nil
	s.pending = s.pending[1:]
	if t.due.After(s.now) {
		s.now = t.due
	}
	return t
}

func (t *manualTimer) fire() {
	defer func() {
		if r := recover(); r != nil {
			xlog.Errorx("manual timer panic", zap.Uint64("timer", t.seq), zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	t.f()
}

// Stop 取消回调
func (t *manualTimer) Stop() bool {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.stopped {
		return false
	}
	idx := slices.Index(s.pending, t)
	if idx < 0 {
		return false
	}
	t.stopped = true
	s.pending = slices.Delete(s.pending, idx, idx+1)
	return true
}
