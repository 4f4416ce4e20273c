package client

import (
	"strings"
	"sync/atomic"

	"wallet-client/internal/state"
	"wallet-client/pkg/nodeapi"
)

// Target 是当前绑定的连接目标
type Target struct {
	Host    string
	Version int
}

// PlaceholderHost 构造后绑定永不为空, 未配置时指向占位地址
// (坏地址在下一次调用时以传输错误暴露, 绑定时不校验)。
const PlaceholderHost = "http://127.0.0.1:4003"

// binding 把目标、传输客户端和版本策略绑在一起。
// 三者作为一个整体被原子替换: 重绑定 = 一次指针交换,
// 调用方在发起请求时取一次快照, 中途重绑定不会改写已发出的请求。
type binding struct {
	target Target
	api    *nodeapi.Client
	res    resourceAPI
}

// Connection 持有当前的 host + API 版本, 是"在跟谁说话、说哪种方言"
// 的唯一事实来源。
type Connection struct {
	current atomic.Pointer[binding]
}

func NewConnection(host string, version int) *Connection {
	c := &Connection{}
	if host == "" {
		host = PlaceholderHost
	}
	c.SetTarget(Target{Host: host, Version: version})
	return c
}

// SetTarget 原子替换绑定目标并重建底层传输。
func (c *Connection) SetTarget(t Target) {
	if t.Version != 1 {
		t.Version = 2
	}
	c.current.Store(&binding{
		target: t,
		api:    nodeapi.New(t.Host, t.Version),
		res:    strategyFor(t.Version),
	})
}

// SetHost 只更新 host, 版本保持
func (c *Connection) SetHost(host string) {
	t := c.Target()
	t.Host = host
	c.SetTarget(t)
}

// SetVersion 只更新版本, host 保持
func (c *Connection) SetVersion(version int) {
	t := c.Target()
	t.Version = version
	c.SetTarget(t)
}

// Target 返回当前绑定目标的快照
func (c *Connection) Target() Target {
	return c.current.Load().target
}

// snapshot 取当前绑定 (内部使用, 每次调用只取一次)
func (c *Connection) snapshot() *binding {
	return c.current.Load()
}

// TargetFromPeer 从节点记录推导连接目标:
// 版本串以 "2." 开头 -> v2, 否则 v1。
func TargetFromPeer(p *state.Peer) Target {
	version := 1
	if strings.HasPrefix(p.Version, "2.") {
		version = 2
	}
	return Target{Host: p.Host(), Version: version}
}

func strategyFor(version int) resourceAPI {
	if version == 1 {
		return apiV1{}
	}
	return apiV2{}
}
