package watcher

import (
	"wallet-client/internal/client"
	"wallet-client/internal/event"
	"wallet-client/internal/state"
	"wallet-client/pkg/logger"
	"wallet-client/pkg/monitor"

	"go.uber.org/zap"
)

// ProfileSource 提供激活档案的订阅能力 (state.MemoryStore 实现)
type ProfileSource interface {
	SubscribeActiveProfile(fn func(*state.Profile)) (cancel func())
}

// Watcher 监听激活档案变化, 把连接绑定重指向到正确的目标。
// 目标解析优先级: 已选中的节点 > 档案网络的默认节点。
// 每次重绑定后在事件总线上广播一次 ClientChanged。
type Watcher struct {
	source  ProfileSource
	session state.Getters
	conn    *client.Connection
	bus     event.Bus

	cancel func()
}

func New(source ProfileSource, session state.Getters, conn *client.Connection, bus event.Bus) *Watcher {
	return &Watcher{
		source:  source,
		session: session,
		conn:    conn,
		bus:     bus,
	}
}

// Start 挂上订阅。订阅契约是"立即回调一次当前值",
// 所以启动时就会按当前档案完成第一次绑定。
func (w *Watcher) Start() {
	w.cancel = w.source.SubscribeActiveProfile(w.onProfile)
}

// Stop 取消订阅, 已完成的绑定保持不变
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// onProfile 对每个档案值做一次目标解析 + 一次原子重绑定。
// 档案为 nil 时什么都不做 (保持当前绑定, 不回退占位目标)。
func (w *Watcher) onProfile(p *state.Profile) {
	if p == nil {
		return
	}

	var (
		target client.Target
		reason string
	)
	if peer, ok := w.session.CurrentPeer(); ok {
		target = client.TargetFromPeer(peer)
		reason = "peer"
	} else if network, ok := w.session.NetworkByID(p.NetworkID); ok {
		target = client.Target{Host: network.Server, Version: network.ApiVersion}
		reason = "network"
	} else {
		logger.Warn("档案指向未知网络, 跳过重绑定",
			zap.String("profile", p.ID),
			zap.String("network_id", p.NetworkID),
		)
		return
	}

	w.conn.SetTarget(target)
	monitor.CountRebind(reason)
	logger.Info("连接绑定已重指向",
		zap.String("host", target.Host),
		zap.Int("version", target.Version),
		zap.String("reason", reason),
	)
	w.bus.Publish(event.ClientChanged)
}
