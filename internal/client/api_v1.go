package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"wallet-client/internal/state"
	"wallet-client/internal/txbuilder"
	"wallet-client/pkg/nodeapi"
)

// resourceAPI 是每个资源查询的版本策略接口。
// 两个实现 (v1/v2) 在绑定时选定一次, 不在每次调用里重复分支;
// 规范形态契约在这个接口边界上强制执行。
type resourceAPI interface {
	networkConfig(ctx context.Context, api *nodeapi.Client) (*NetworkConfig, error)
	peerStatus(ctx context.Context, api *nodeapi.Client) (*PeerStatus, error)
	delegates(ctx context.Context, api *nodeapi.Client) (*DelegatePage, error)
	delegateForged(ctx context.Context, api *nodeapi.Client, publicKey string) (int64, error)
	transactions(ctx context.Context, api *nodeapi.Client, address string, opts TransactionOptions, epoch time.Time) (*TransactionPage, error)
	wallet(ctx context.Context, api *nodeapi.Client, address string) (*Wallet, error)
	walletVote(ctx context.Context, api *nodeapi.Client, address string) (*WalletVote, error)
	peers(ctx context.Context, api *nodeapi.Client) ([]*state.Peer, error)
	broadcast(ctx context.Context, api *nodeapi.Client, txs []*txbuilder.SignedTransaction) (json.RawMessage, error)
}

// apiV1 旧版方言。
// 错误策略: 传输错误向上抛; success=false 的软失败按方法吸收成
// 空列表/零值/未投票哨兵, 不转成 error。
type apiV1 struct{}

func (apiV1) networkConfig(ctx context.Context, api *nodeapi.Client) (*NetworkConfig, error) {
	var resp struct {
		Success bool            `json:"success"`
		Network json.RawMessage `json:"network"`
	}
	if err := api.Get(ctx, "api/loader/status", nil, &resp); err != nil {
		return nil, err
	}
	cfg := &NetworkConfig{Raw: resp.Network}
	if err := json.Unmarshal(resp.Network, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (apiV1) peerStatus(ctx context.Context, api *nodeapi.Client) (*PeerStatus, error) {
	var resp struct {
		Success bool  `json:"success"`
		Height  int64 `json:"height"`
		Syncing bool  `json:"syncing"`
	}
	raw := json.RawMessage{}
	if err := api.Get(ctx, "api/loader/configuration", nil, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &PeerStatus{Height: resp.Height, Syncing: resp.Syncing, Raw: raw}, nil
}

func (apiV1) delegates(ctx context.Context, api *nodeapi.Client) (*DelegatePage, error) {
	var resp struct {
		Success    bool          `json:"success"`
		Delegates  []*v1Delegate `json:"delegates"`
		TotalCount int           `json:"totalCount"`
	}
	if err := api.Get(ctx, "api/delegates", nil, &resp); err != nil {
		return nil, err
	}
	// 软失败吸收为空页: 调用方不能用"非空"反推"成功"
	if !resp.Success {
		return &DelegatePage{Delegates: []*Delegate{}, SoftFailed: true}, nil
	}

	page := &DelegatePage{
		Delegates:  make([]*Delegate, 0, len(resp.Delegates)),
		TotalCount: resp.TotalCount,
	}
	for _, d := range resp.Delegates {
		page.Delegates = append(page.Delegates, normalizeV1Delegate(d))
	}
	return page, nil
}

func (apiV1) delegateForged(ctx context.Context, api *nodeapi.Client, publicKey string) (int64, error) {
	var resp struct {
		Success bool    `json:"success"`
		Forged  FlexInt `json:"forged"`
	}
	query := url.Values{"generatorPublicKey": {publicKey}}
	if err := api.Get(ctx, "api/delegates/forging/getForgedByAccount", query, &resp); err != nil {
		return 0, err
	}
	// 0 同时充当"无数据"哨兵, 与真实为零不可区分 (已知局限)
	if !resp.Success {
		return 0, nil
	}
	return int64(resp.Forged), nil
}

func (apiV1) transactions(ctx context.Context, api *nodeapi.Client, address string, opts TransactionOptions, epoch time.Time) (*TransactionPage, error) {
	var resp struct {
		Success      bool             `json:"success"`
		Transactions []*v1Transaction `json:"transactions"`
		Count        FlexInt          `json:"count"`
	}

	// page 按原样换算为 offset: (page-1)*limit。
	// page 0 得到负 offset —— 源行为如此, 不做静默修正。
	offset := (opts.Page - 1) * opts.Limit
	query := url.Values{
		"senderId":    {address},
		"recipientId": {address},
		"limit":       {strconv.Itoa(opts.Limit)},
		"offset":      {strconv.Itoa(offset)},
		"orderBy":     {opts.OrderBy},
	}
	if err := api.Get(ctx, "api/transactions", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &TransactionPage{Transactions: []*Transaction{}, SoftFailed: true}, nil
	}

	page := &TransactionPage{
		Transactions: make([]*Transaction, 0, len(resp.Transactions)),
		TotalCount:   int(resp.Count),
	}
	for _, tx := range resp.Transactions {
		page.Transactions = append(page.Transactions, normalizeV1Transaction(tx, epoch))
	}
	enrichTransactions(page.Transactions, address)
	return page, nil
}

func (apiV1) wallet(ctx context.Context, api *nodeapi.Client, address string) (*Wallet, error) {
	var resp struct {
		Success bool       `json:"success"`
		Account *v1Account `json:"account"`
		Error   string     `json:"error"`
	}
	query := url.Values{"address": {address}}
	if err := api.Get(ctx, "api/accounts", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Account == nil {
		return nil, nil
	}
	return normalizeV1Account(resp.Account), nil
}

func (apiV1) walletVote(ctx context.Context, api *nodeapi.Client, address string) (*WalletVote, error) {
	var resp struct {
		Success   bool `json:"success"`
		Delegates []struct {
			PublicKey string `json:"publicKey"`
		} `json:"delegates"`
	}
	query := url.Values{"address": {address}}
	if err := api.Get(ctx, "api/accounts/delegates", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &WalletVote{SoftFailed: true}, nil
	}
	if len(resp.Delegates) == 0 {
		return &WalletVote{}, nil
	}
	return &WalletVote{PublicKey: resp.Delegates[0].PublicKey, Voted: true}, nil
}

func (apiV1) peers(ctx context.Context, api *nodeapi.Client) ([]*state.Peer, error) {
	var resp struct {
		Success bool `json:"success"`
		Peers   []struct {
			IP      string `json:"ip"`
			Port    int    `json:"port"`
			Version string `json:"version"`
			Height  int64  `json:"height"`
			Delay   int64  `json:"delay"`
		} `json:"peers"`
	}
	if err := api.Get(ctx, "api/peers", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return []*state.Peer{}, nil
	}
	out := make([]*state.Peer, 0, len(resp.Peers))
	for _, p := range resp.Peers {
		out = append(out, &state.Peer{
			IP:      p.IP,
			Port:    p.Port,
			Version: p.Version,
			Height:  p.Height,
			Latency: p.Delay,
		})
	}
	return out, nil
}

func (apiV1) broadcast(ctx context.Context, api *nodeapi.Client, txs []*txbuilder.SignedTransaction) (json.RawMessage, error) {
	var resp json.RawMessage
	body := map[string]interface{}{"transactions": txs}
	if err := api.Post(ctx, "peer/transactions", body, &resp); err != nil {
		return nil, err
	}
	// 广播确认语义归节点所有, 原样返回不整形
	return resp, nil
}
