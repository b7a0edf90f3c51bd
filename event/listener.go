package event

import (
	"cmp"
	"slices"

	"go.uber.org/atomic"
)

var listenerIDCounter atomic.Uint64

// Handler 监听回调, 返回的错误会交给 Bus 的错误处理函数
type Handler func(args ...any) error

// Listener 监听器
//
// Listener 指针是取消订阅时的身份标识, 与订阅时附加的 debounce/throttle/once 包装无关
type Listener struct {
	id     uint64  // 日志中使用的唯一ID
	handle Handler // 原始回调
}

// NewListener 创建监听器, handle 为 nil 时返回 nil
func NewListener(handle Handler) *Listener {
	if handle == nil {
		return nil
	}
	return &Listener{
		id:     listenerIDCounter.Inc(),
		handle: handle,
	}
}

// ID 监听器ID
func (l *Listener) ID() uint64 {
	return l.id
}

// ------------------------------------------------------------------------------

// listenerEntry 一次订阅产生的条目
type listenerEntry struct {
	wrapped  Handler   // 经过 timing/once 包装后的回调
	original *Listener // 订阅时传入的监听器
	priority int       // 值越大越先执行
}

// 监听器集合
type listenerSet struct {
	entries []*listenerEntry
	sorted  bool
}

func newListenerSet() *listenerSet {
	return &listenerSet{
		entries: []*listenerEntry{},
		sorted:  true,
	}
}

// register 追加条目, 同一个监听器允许多次订阅
func (set *listenerSet) register(e *listenerEntry) {
	set.entries = append(set.entries, e)
	set.sorted = false
}

// unregister 删除监听器对应的全部条目, 返回删除数量
func (set *listenerSet) unregister(l *Listener) int {
	before := len(set.entries)
	set.entries = slices.DeleteFunc(set.entries, func(e *listenerEntry) bool {
		return e.original == l
	})
	removed := before - len(set.entries)
	if removed > 0 {
		set.sorted = false
	}
	return removed
}

// snapshot 按优先级排好序后返回条目副本, 执行期间的订阅变化不影响本次分发
func (set *listenerSet) snapshot() []*listenerEntry {
	if !set.sorted {
		// 优先级相同时保持注册顺序
		slices.SortStableFunc(set.entries, func(a, b *listenerEntry) int {
			return cmp.Compare(b.priority, a.priority)
		})
		set.sorted = true
	}
	return slices.Clone(set.entries)
}

// Len 条目数量
func (set *listenerSet) Len() int {
	return len(set.entries)
}
