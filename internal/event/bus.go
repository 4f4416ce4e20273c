package event

import (
	"sync"
)

// ClientChanged 在连接绑定被重指向后广播, 不携带负载。
// 订阅方收到后应自行重新拉取数据。
const ClientChanged = "client:changed"

// Bus 是进程级事件通道
type Bus interface {
	// Publish 广播一个命名事件
	Publish(name string)
	// Subscribe 订阅命名事件, 返回取消函数
	Subscribe(name string, fn func()) (cancel func())
}

// MemoryBus 进程内实现。回调同步执行, 订阅方不要在回调里做慢操作。
type MemoryBus struct {
	mu      sync.RWMutex
	nextID  int
	handler map[string]map[int]func()
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handler: make(map[string]map[int]func())}
}

func (b *MemoryBus) Publish(name string) {
	b.mu.RLock()
	subs := make([]func(), 0, len(b.handler[name]))
	for _, fn := range b.handler[name] {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

func (b *MemoryBus) Subscribe(name string, fn func()) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.handler[name] == nil {
		b.handler[name] = make(map[int]func())
	}
	b.handler[name][id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handler[name], id)
		b.mu.Unlock()
	}
}
