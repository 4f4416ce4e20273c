package peers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"wallet-client/internal/client"
	"wallet-client/internal/state"
	"wallet-client/pkg/crypto_util"
	"wallet-client/pkg/logger"
	"wallet-client/pkg/peeraddr"

	"go.uber.org/zap"
)

// Discovery 从种子/已知节点向外扩散, 拉取每个网络的候选节点池。
// 实现 client.PeerDiscovery。
type Discovery struct {
	// Seeds 按网络 ID 配置的种子地址 (host 或 URL 形式)
	Seeds map[string][]string
	// QueryTimeout 单个节点的查询超时, 零值用 3s
	QueryTimeout time.Duration
}

func NewDiscovery(seeds map[string][]string, queryTimeout time.Duration) *Discovery {
	if queryTimeout <= 0 {
		queryTimeout = 3 * time.Second
	}
	return &Discovery{Seeds: seeds, QueryTimeout: queryTimeout}
}

// Discover 向每个起点节点查询它的 peer 列表, 合并去重后
// 按高度降序、延迟升序排序。起点为空时退回配置的种子;
// 给定起点全灭时同样退回种子重试一轮 (恢复路径依赖这一步)。
// 只要有一个起点应答成功就算成功; 全部失败才返回错误。
func (d *Discovery) Discover(ctx context.Context, networkID string, seed []*state.Peer) ([]*state.Peer, error) {
	fromSeeds := len(seed) == 0
	if fromSeeds {
		seed = d.seedPeers(networkID)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("网络 %q 没有可用的发现起点", networkID)
	}

	out, err := d.fanout(ctx, seed)
	if err == nil || fromSeeds {
		return out, err
	}

	fallback := d.seedPeers(networkID)
	if len(fallback) == 0 {
		return nil, err
	}
	logger.Warn("已知起点全部不可达, 退回配置种子重试", zap.String("network", networkID))
	return d.fanout(ctx, fallback)
}

func (d *Discovery) fanout(ctx context.Context, seed []*state.Peer) ([]*state.Peer, error) {
	merged := make(map[string]*state.Peer)
	reached := 0
	for _, p := range seed {
		target := client.TargetFromPeer(p)
		list, err := client.FetchPeerList(ctx, target.Host, target.Version, d.QueryTimeout)
		if err != nil {
			logger.Warn("节点发现查询失败",
				zap.String("host", target.Host),
				zap.Error(err),
			)
			continue
		}
		reached++
		// 起点自身也是候选; 应答里的记录更新鲜, 后写覆盖
		merged[peerIdentity(p)] = p
		for _, cand := range list {
			merged[peerIdentity(cand)] = cand
		}
	}
	if reached == 0 {
		return nil, fmt.Errorf("全部发现起点都不可达 (%d 个)", len(seed))
	}

	out := make([]*state.Peer, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Height != out[j].Height {
			return out[i].Height > out[j].Height
		}
		return out[i].Latency < out[j].Latency
	})
	return out, nil
}

// seedPeers 把配置里的种子地址解析成节点记录。
// 种子没有版本信息, 先按 v2 假设, 探测阶段会纠正。
func (d *Discovery) seedPeers(networkID string) []*state.Peer {
	out := make([]*state.Peer, 0, len(d.Seeds[networkID]))
	for _, raw := range d.Seeds[networkID] {
		addr, err := peeraddr.Parse(raw)
		if err != nil {
			logger.Warn("种子地址无法解析", zap.String("seed", raw), zap.Error(err))
			continue
		}
		out = append(out, &state.Peer{IP: addr.IP, Port: addr.Port, Version: "2.0.0"})
	}
	return out
}

// peerIdentity 生成节点去重键。ip:port 唯一决定身份,
// 版本/高度等易变字段不参与。
func peerIdentity(p *state.Peer) string {
	return crypto_util.Blake3ID([]byte(strings.ToLower(p.IP) + ":" + fmt.Sprint(p.Port)))
}
