package event

import (
	"testing"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	got := 0
	bus.Subscribe(ClientChanged, func() { got++ })

	bus.Publish(ClientChanged)
	bus.Publish(ClientChanged)
	if got != 2 {
		t.Errorf("应收到 2 次, got %d", got)
	}

	// 不相干的事件名不应串台
	bus.Publish("other:event")
	if got != 2 {
		t.Errorf("其它事件不应触发回调, got %d", got)
	}
}

func TestMemoryBusCancel(t *testing.T) {
	bus := NewMemoryBus()

	got := 0
	cancel := bus.Subscribe(ClientChanged, func() { got++ })
	bus.Publish(ClientChanged)
	cancel()
	bus.Publish(ClientChanged)

	if got != 1 {
		t.Errorf("取消后不应再收到, got %d", got)
	}
}

func TestMemoryBusMultipleSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	a, b := 0, 0
	bus.Subscribe(ClientChanged, func() { a++ })
	bus.Subscribe(ClientChanged, func() { b++ })

	bus.Publish(ClientChanged)
	if a != 1 || b != 1 {
		t.Errorf("所有订阅者都应收到: a=%d b=%d", a, b)
	}
}
