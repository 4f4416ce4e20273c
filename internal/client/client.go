package client

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"wallet-client/internal/state"
	"wallet-client/internal/txbuilder"
	"wallet-client/pkg/monitor"
	"wallet-client/pkg/nodeapi"
	"wallet-client/pkg/peeraddr"
)

// PeerDiscovery 是节点发现原语 (internal/peers 实现)。
// 放接口在这边, 避免 client <-> peers 的环形依赖。
type PeerDiscovery interface {
	Discover(ctx context.Context, networkID string, seed []*state.Peer) ([]*state.Peer, error)
}

// Client 把连接绑定、响应规范化、交易构建和节点发现组合成一个
// 版本无关的查询/命令界面。所有查询只返回规范形态。
type Client struct {
	conn      *Connection
	session   state.Getters
	discovery PeerDiscovery
}

// New 创建节点客户端。session 提供 epoch 等网络常量;
// discovery 可为 nil (此时 FetchPeers 不可用)。
func New(conn *Connection, session state.Getters, discovery PeerDiscovery) *Client {
	return &Client{
		conn:      conn,
		session:   session,
		discovery: discovery,
	}
}

// Connection 暴露绑定供 watcher / recovery 重指向
func (c *Client) Connection() *Connection {
	return c.conn
}

// FetchNetworkConfig 静态探测: 不经过实例当前绑定, 用于在提交之前
// 验证候选节点。timeout>0 时只对本次探测覆盖传输默认超时。
func FetchNetworkConfig(ctx context.Context, server string, version int, timeout time.Duration) (*NetworkConfig, error) {
	api := nodeapi.New(server, version)
	if timeout > 0 {
		api = api.WithTimeout(timeout)
	}
	return strategyFor(version).networkConfig(ctx, api)
}

// FetchPeerList 静态拉取某个节点的 peer 列表 (发现原语使用)
func FetchPeerList(ctx context.Context, server string, version int, timeout time.Duration) ([]*state.Peer, error) {
	api := nodeapi.New(server, version)
	if timeout > 0 {
		api = api.WithTimeout(timeout)
	}
	return strategyFor(version).peers(ctx, api)
}

// FetchPeerStatus 查询当前绑定节点的状态
func (c *Client) FetchPeerStatus(ctx context.Context) (*PeerStatus, error) {
	b := c.conn.snapshot()
	defer c.observe("status", b, time.Now())
	return b.res.peerStatus(ctx, b.api)
}

// FetchDelegates 查询受托人列表。
// v1 软失败返回空页 (SoftFailed 置位), 不是错误。
func (c *Client) FetchDelegates(ctx context.Context) (*DelegatePage, error) {
	b := c.conn.snapshot()
	defer c.observe("delegates", b, time.Now())
	return b.res.delegates(ctx, b.api)
}

// FetchDelegateForged 查询受托人锻造总额。
// 传入的 delegate 已带 forged 数据时直接短路, 不再发请求。
func (c *Client) FetchDelegateForged(ctx context.Context, delegate *Delegate) (int64, error) {
	if delegate.Forged != nil {
		return delegate.Forged.Total, nil
	}
	b := c.conn.snapshot()
	defer c.observe("delegate_forged", b, time.Now())
	return b.res.delegateForged(ctx, b.api, delegate.PublicKey)
}

// FetchTransactions 查询地址的交易历史。
// opts 零值采用缺省 {page:0, limit:50, orderBy:"timestamp:desc"}。
func (c *Client) FetchTransactions(ctx context.Context, address string, opts TransactionOptions) (*TransactionPage, error) {
	opts.applyDefaults()
	b := c.conn.snapshot()
	defer c.observe("transactions", b, time.Now())
	return b.res.transactions(ctx, b.api, address, opts, c.epoch())
}

// FetchWallet 查询钱包。未找到时返回 (nil, nil)。
func (c *Client) FetchWallet(ctx context.Context, address string) (*Wallet, error) {
	b := c.conn.snapshot()
	defer c.observe("wallet", b, time.Now())
	return b.res.wallet(ctx, b.api, address)
}

// FetchWalletVote 查询钱包当前投给的受托人公钥
func (c *Client) FetchWalletVote(ctx context.Context, address string) (*WalletVote, error) {
	b := c.conn.snapshot()
	defer c.observe("wallet_vote", b, time.Now())
	return b.res.walletVote(ctx, b.api, address)
}

// FetchPeers 通过发现原语获取候选节点。
// 指定 network 时强制丢弃已有列表做种子发现;
// 两者都没有时退化为"当前绑定 host 解析出的单节点列表"。
func (c *Client) FetchPeers(ctx context.Context, network string, peers []*state.Peer) ([]*state.Peer, error) {
	if network != "" {
		peers = nil
	} else if len(peers) == 0 {
		t := c.conn.Target()
		addr, err := peeraddr.Parse(t.Host)
		if err != nil {
			return nil, err
		}
		version := "1.0.0"
		if t.Version == 2 {
			version = "2.0.0"
		}
		peers = []*state.Peer{{IP: addr.IP, Port: addr.Port, Version: version}}
	}
	return c.discovery.Discover(ctx, network, peers)
}

// ---- 交易构建 (固定流水线, 见 txbuilder) ----

// VoteInput 等输入结构只是把 CLI/HTTP 层的参数透传给构建器
type VoteInput struct {
	Votes []string
	txbuilder.SignOptions
}

func (c *Client) BuildVote(in VoteInput) (*txbuilder.SignedTransaction, error) {
	return txbuilder.Build(txbuilder.NewVote(in.Votes), in.SignOptions)
}

type DelegateRegistrationInput struct {
	Username string
	txbuilder.SignOptions
}

func (c *Client) BuildDelegateRegistration(in DelegateRegistrationInput) (*txbuilder.SignedTransaction, error) {
	return txbuilder.Build(txbuilder.NewDelegateRegistration(in.Username), in.SignOptions)
}

type TransferInput struct {
	Amount      int64
	RecipientID string
	VendorField string
	txbuilder.SignOptions
}

func (c *Client) BuildTransfer(in TransferInput) (*txbuilder.SignedTransaction, error) {
	return txbuilder.Build(txbuilder.NewTransfer(in.Amount, in.RecipientID, in.VendorField), in.SignOptions)
}

type SecondSignatureInput struct {
	txbuilder.SignOptions
}

func (c *Client) BuildSecondSignatureRegistration(in SecondSignatureInput) (*txbuilder.SignedTransaction, error) {
	return txbuilder.Build(txbuilder.NewSecondSignature(in.SecondPassphrase), in.SignOptions)
}

// BroadcastTransactions 广播一笔或多笔交易。
// 单笔也统一成列表提交; 节点的确认负载原样返回。
func (c *Client) BroadcastTransactions(ctx context.Context, txs ...*txbuilder.SignedTransaction) (json.RawMessage, error) {
	b := c.conn.snapshot()
	defer c.observe("broadcast", b, time.Now())
	if monitor.Business != nil {
		monitor.Business.BroadcastTotal.WithLabelValues(strconv.Itoa(b.target.Version)).Add(float64(len(txs)))
	}
	return b.res.broadcast(ctx, b.api, txs)
}

// epoch 从会话网络读取纪元常量, 没有会话时退回内置纪元
func (c *Client) epoch() time.Time {
	if c.session != nil {
		if n, ok := c.session.SessionNetwork(); ok && !n.Epoch.IsZero() {
			return n.Epoch
		}
	}
	return txbuilder.Epoch
}

func (c *Client) observe(resource string, b *binding, start time.Time) {
	monitor.ObserveNodeRequest(resource, strconv.Itoa(b.target.Version), nil, time.Since(start).Seconds())
}
