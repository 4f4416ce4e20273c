package peers

import (
	"context"
	"fmt"
	"time"

	"wallet-client/internal/client"
	"wallet-client/internal/event"
	"wallet-client/internal/state"
	"wallet-client/pkg/logger"
	"wallet-client/pkg/monitor"

	"go.uber.org/zap"
)

// Manager 维护节点池与当前节点, 并负责失联后的自动恢复。
type Manager struct {
	store        state.Container
	cli          *client.Client
	bus          event.Bus
	probeTimeout time.Duration
}

func NewManager(store state.Container, cli *client.Client, bus event.Bus, probeTimeout time.Duration) *Manager {
	if probeTimeout <= 0 {
		probeTimeout = 3 * time.Second
	}
	return &Manager{
		store:        store,
		cli:          cli,
		bus:          bus,
		probeTimeout: probeTimeout,
	}
}

// ConnectOptions 控制选择节点的行为
type ConnectOptions struct {
	// SkipIfCustom 为真且当前节点是用户手工指定的, 保持不换
	SkipIfCustom bool
	// Network 强制指定网络 (空取会话网络)
	Network string
}

// ConnectToBest 刷新节点池, 挑出最优节点, 探测通过后提交为当前节点
// 并重绑定连接。候选按 (高度降序, 延迟升序) 逐个探测, 首个可达者胜出。
func (m *Manager) ConnectToBest(ctx context.Context, opts ConnectOptions) (*state.Peer, error) {
	if opts.SkipIfCustom {
		if cur, ok := m.store.CurrentPeer(); ok && cur.IsCustom {
			return cur, nil
		}
	}

	networkID := opts.Network
	if networkID == "" {
		if n, ok := m.store.SessionNetwork(); ok {
			networkID = n.ID
		}
	}

	known := m.store.Peers(networkID)
	list, err := m.cli.FetchPeers(ctx, opts.Network, known)
	if err != nil {
		return nil, err
	}
	m.store.SetPeers(networkID, list)

	for _, p := range list {
		if err := m.probe(ctx, p); err != nil {
			logger.Debug("候选节点探测失败",
				zap.String("host", p.Host()),
				zap.Error(err),
			)
			continue
		}
		m.commit(p)
		return p, nil
	}
	return nil, fmt.Errorf("网络 %q 没有探测通过的节点", networkID)
}

// Refresh 重新查询当前节点的状态 (高度/同步情况), 更新记录后重新提交。
// 没有当前节点时返回错误, 由恢复流程接管。
func (m *Manager) Refresh(ctx context.Context) error {
	cur, ok := m.store.CurrentPeer()
	if !ok {
		return fmt.Errorf("没有当前节点可刷新")
	}

	start := time.Now()
	target := client.TargetFromPeer(cur)
	status, err := probeStatus(ctx, target, m.probeTimeout)
	if err != nil {
		return err
	}

	refreshed := *cur
	refreshed.Height = status.Height
	refreshed.Latency = time.Since(start).Milliseconds()
	m.commit(&refreshed)
	return nil
}

// Update 是周期性恢复入口: 先尝试刷新当前节点, 失败 (包括根本没有
// 当前节点) 则清空选择与节点池, 从种子重新选最优。
// 恢复永远不向调用方抛错, 失败只记日志等下一轮。
func (m *Manager) Update(ctx context.Context) {
	if err := m.Refresh(ctx); err == nil {
		return
	}

	monitor.CountRecovery()
	logger.Info("当前节点失联, 进入节点系统恢复")

	networkID := ""
	if n, ok := m.store.SessionNetwork(); ok {
		networkID = n.ID
	}
	m.store.ClearCurrentPeer()
	m.store.ClearPeers(networkID)

	// 恢复时必须允许替换用户手选节点, 否则会卡死在失联节点上
	if _, err := m.ConnectToBest(ctx, ConnectOptions{SkipIfCustom: false}); err != nil {
		logger.Warn("节点系统恢复失败, 等待下一轮", zap.Error(err))
	}
}

// RunLoop 按固定间隔执行 Update, ctx 取消即退出
func (m *Manager) RunLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Update(ctx)
		}
	}
}

// probe 验证候选节点能应答基础查询
func (m *Manager) probe(ctx context.Context, p *state.Peer) error {
	target := client.TargetFromPeer(p)
	_, err := client.FetchNetworkConfig(ctx, target.Host, target.Version, m.probeTimeout)
	return err
}

// commit 提交当前节点选择并重绑定连接
func (m *Manager) commit(p *state.Peer) {
	m.store.SetCurrentPeer(p)
	m.cli.Connection().SetTarget(client.TargetFromPeer(p))
	monitor.CountRebind("peer")
	logger.Info("已连接节点",
		zap.String("host", p.Host()),
		zap.Int64("height", p.Height),
		zap.Int64("latency_ms", p.Latency),
	)
	m.bus.Publish(event.ClientChanged)
}

func probeStatus(ctx context.Context, target client.Target, timeout time.Duration) (*client.PeerStatus, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn := client.NewConnection(target.Host, target.Version)
	return client.New(conn, nil, nil).FetchPeerStatus(cctx)
}
