package state

import (
	"testing"
)

func TestSubscribeActiveProfileImmediateCallback(t *testing.T) {
	store := NewMemoryStore()
	store.SetActiveProfile(&Profile{ID: "p1"})

	var got *Profile
	calls := 0
	cancel := store.SubscribeActiveProfile(func(p *Profile) {
		got = p
		calls++
	})
	defer cancel()

	// 契约: 订阅时立即以当前值回调一次
	if calls != 1 {
		t.Fatalf("订阅应立即回调一次, got %d", calls)
	}
	if got == nil || got.ID != "p1" {
		t.Errorf("立即回调应携带当前档案: %+v", got)
	}

	store.SetActiveProfile(&Profile{ID: "p2"})
	if calls != 2 || got.ID != "p2" {
		t.Errorf("切换后应再次回调: calls=%d got=%+v", calls, got)
	}
}

func TestSubscribeActiveProfileCancel(t *testing.T) {
	store := NewMemoryStore()

	calls := 0
	cancel := store.SubscribeActiveProfile(func(p *Profile) { calls++ })
	cancel()

	store.SetActiveProfile(&Profile{ID: "p1"})
	if calls != 1 {
		t.Errorf("取消后不应再回调, got %d", calls)
	}
}

func TestSubscriberMayCallStore(t *testing.T) {
	// 回调在锁外执行: 订阅者里允许再调用 Store 方法, 不能死锁
	store := NewMemoryStore()
	store.SubscribeActiveProfile(func(p *Profile) {
		store.CurrentPeer()
		store.ClearCurrentPeer()
	})
	store.SetActiveProfile(&Profile{ID: "p1"})
}

func TestPeersCopyOnRead(t *testing.T) {
	store := NewMemoryStore()
	store.SetPeers("mainnet", []*Peer{{IP: "1.1.1.1", Port: 4003}})

	list := store.Peers("mainnet")
	list[0] = &Peer{IP: "hacked"}

	if store.Peers("mainnet")[0].IP != "1.1.1.1" {
		t.Error("读出的切片被改写不应影响容器内部状态")
	}
}

func TestPeerHost(t *testing.T) {
	p := &Peer{IP: "1.2.3.4", Port: 4003}
	if got := p.Host(); got != "http://1.2.3.4:4003" {
		t.Errorf("Host() = %q", got)
	}
}
