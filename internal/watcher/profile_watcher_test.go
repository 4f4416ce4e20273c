package watcher

import (
	"testing"

	"wallet-client/internal/client"
	"wallet-client/internal/event"
	"wallet-client/internal/state"
)

func newFixture() (*state.MemoryStore, *client.Connection, *event.MemoryBus) {
	store := state.NewMemoryStore()
	store.AddNetwork(&state.Network{ID: "mainnet", Server: "http://mainnet:4003", ApiVersion: 2})
	store.AddNetwork(&state.Network{ID: "legacy", Server: "http://legacy:4001", ApiVersion: 1})
	conn := client.NewConnection("", 2)
	bus := event.NewMemoryBus()
	return store, conn, bus
}

func TestWatcherBindsOnSubscribe(t *testing.T) {
	store, conn, bus := newFixture()
	// 订阅前就有激活档案: 启动时必须完成第一次绑定
	store.SetActiveProfile(&state.Profile{ID: "p1", NetworkID: "mainnet"})

	w := New(store, store, conn, bus)
	w.Start()
	defer w.Stop()

	target := conn.Target()
	if target.Host != "http://mainnet:4003" || target.Version != 2 {
		t.Errorf("启动绑定错误: %+v", target)
	}
}

func TestWatcherRebindsOnProfileSwitch(t *testing.T) {
	store, conn, bus := newFixture()
	store.SetActiveProfile(&state.Profile{ID: "p1", NetworkID: "mainnet"})

	changed := 0
	bus.Subscribe(event.ClientChanged, func() { changed++ })

	w := New(store, store, conn, bus)
	w.Start()
	defer w.Stop()

	if changed != 1 {
		t.Fatalf("启动绑定应广播一次, got %d", changed)
	}

	// 切到旧版网络的档案
	store.SetActiveProfile(&state.Profile{ID: "p2", NetworkID: "legacy"})

	target := conn.Target()
	if target.Host != "http://legacy:4001" || target.Version != 1 {
		t.Errorf("切换后绑定错误: %+v", target)
	}
	if changed != 2 {
		t.Errorf("每次重绑定恰好广播一次, got %d", changed)
	}
}

func TestWatcherPrefersCurrentPeer(t *testing.T) {
	store, conn, bus := newFixture()
	// 已选中节点时, 节点优先于网络默认
	store.SetCurrentPeer(&state.Peer{IP: "9.9.9.9", Port: 4003, Version: "2.1.0"})
	store.SetActiveProfile(&state.Profile{ID: "p1", NetworkID: "mainnet"})

	w := New(store, store, conn, bus)
	w.Start()
	defer w.Stop()

	target := conn.Target()
	if target.Host != "http://9.9.9.9:4003" {
		t.Errorf("应绑定到已选节点: %+v", target)
	}
	if target.Version != 2 {
		t.Errorf("版本 2.1.0 应推导出 v2: %+v", target)
	}

	// 旧版节点
	store.SetCurrentPeer(&state.Peer{IP: "8.8.8.8", Port: 4001, Version: "1.0.0"})
	store.SetActiveProfile(&state.Profile{ID: "p1", NetworkID: "mainnet"})
	if got := conn.Target().Version; got != 1 {
		t.Errorf("版本 1.0.0 应推导出 v1, got %d", got)
	}
}

func TestWatcherIgnoresNilProfile(t *testing.T) {
	store, conn, bus := newFixture()

	changed := 0
	bus.Subscribe(event.ClientChanged, func() { changed++ })

	// 没有激活档案: 订阅立即回调 nil, 不应绑定也不应广播
	w := New(store, store, conn, bus)
	w.Start()
	defer w.Stop()

	if changed != 0 {
		t.Errorf("nil 档案不应触发广播, got %d", changed)
	}
	if conn.Target().Host != client.PlaceholderHost {
		t.Errorf("nil 档案不应改变绑定: %+v", conn.Target())
	}
}

func TestWatcherUnknownNetwork(t *testing.T) {
	store, conn, bus := newFixture()

	w := New(store, store, conn, bus)
	w.Start()
	defer w.Stop()

	before := conn.Target()
	store.SetActiveProfile(&state.Profile{ID: "p1", NetworkID: "no-such-network"})
	if conn.Target() != before {
		t.Error("未知网络的档案不应改变绑定")
	}
}
