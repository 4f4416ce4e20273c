package state

import (
	"fmt"
	"time"
)

// Network 描述一个可连接的链网络 (Profile 通过 NetworkID 引用)
type Network struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Server     string    `json:"server"`      // 默认节点, 形如 http://host:port
	ApiVersion int       `json:"api_version"` // 1 或 2
	Epoch      time.Time `json:"epoch"`       // v1 交易时间戳的纪元起点
	Token      string    `json:"token"`
	Symbol     string    `json:"symbol"`
}

// Profile 是用户侧的配置档案, 决定当前连接哪个网络
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NetworkID string `json:"network_id"`
}

// Peer 是节点注册表里的一个候选节点。
// Version 是节点自报的 semver 字符串, "2." 开头代表 v2 API。
type Peer struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Version  string `json:"version"`
	Height   int64  `json:"height"`
	Latency  int64  `json:"latency"` // ms
	IsCustom bool   `json:"is_custom"`
}

// Host 返回节点的连接 URL
func (p *Peer) Host() string {
	return fmt.Sprintf("http://%s:%d", p.IP, p.Port)
}

// Getters 是核心消费状态容器的只读触点。
// 核心不拥有这些数据, 只通过该接口读取。
type Getters interface {
	// SessionNetwork 返回当前会话绑定的网络 (epoch 等常量从这里取)
	SessionNetwork() (*Network, bool)
	// NetworkByID 网络注册表查询
	NetworkByID(id string) (*Network, bool)
	// ActiveProfile 当前激活的配置档案
	ActiveProfile() (*Profile, bool)
	// CurrentPeer 当前选中的节点
	CurrentPeer() (*Peer, bool)
	// Peers 某网络下已知的节点池
	Peers(networkID string) []*Peer
}

// Actions 是核心允许触发的状态写入动作。
type Actions interface {
	SetCurrentPeer(p *Peer)
	ClearCurrentPeer()
	SetPeers(networkID string, peers []*Peer)
	ClearPeers(networkID string)
}

// Container 组合读写触点
type Container interface {
	Getters
	Actions
}
