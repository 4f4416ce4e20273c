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

// apiV2 新版方言。没有软失败标志, 失败即传输/状态码错误。
type apiV2 struct{}

type v2Meta struct {
	TotalCount int `json:"totalCount"`
}

func (apiV2) networkConfig(ctx context.Context, api *nodeapi.Client) (*NetworkConfig, error) {
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := api.Get(ctx, "api/v2/node/configuration", nil, &resp); err != nil {
		return nil, err
	}
	cfg := &NetworkConfig{Raw: resp.Data}
	if err := json.Unmarshal(resp.Data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (apiV2) peerStatus(ctx context.Context, api *nodeapi.Client) (*PeerStatus, error) {
	var resp struct {
		Data struct {
			Syncing bool  `json:"syncing"`
			Height  int64 `json:"height"`
		} `json:"data"`
	}
	raw := json.RawMessage{}
	if err := api.Get(ctx, "api/v2/node/syncing", nil, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &PeerStatus{Height: resp.Data.Height, Syncing: resp.Data.Syncing, Raw: raw}, nil
}

func (apiV2) delegates(ctx context.Context, api *nodeapi.Client) (*DelegatePage, error) {
	var resp struct {
		Data []*v2Delegate `json:"data"`
		Meta v2Meta        `json:"meta"`
	}
	if err := api.Get(ctx, "api/v2/delegates", nil, &resp); err != nil {
		return nil, err
	}
	page := &DelegatePage{
		Delegates:  make([]*Delegate, 0, len(resp.Data)),
		TotalCount: resp.Meta.TotalCount,
	}
	for _, d := range resp.Data {
		page.Delegates = append(page.Delegates, normalizeV2Delegate(d))
	}
	return page, nil
}

func (apiV2) delegateForged(ctx context.Context, api *nodeapi.Client, publicKey string) (int64, error) {
	var resp struct {
		Data *v2Delegate `json:"data"`
	}
	if err := api.Get(ctx, "api/v2/delegates/"+publicKey, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Data == nil || resp.Data.Forged == nil {
		return 0, nil
	}
	return resp.Data.Forged.Total, nil
}

func (apiV2) transactions(ctx context.Context, api *nodeapi.Client, address string, opts TransactionOptions, _ time.Time) (*TransactionPage, error) {
	var resp struct {
		Data []*v2Transaction `json:"data"`
		Meta v2Meta           `json:"meta"`
	}
	// orderBy 接受但不下发: v2 侧排序当前不支持 (已知缺口)
	query := url.Values{
		"page":  {strconv.Itoa(opts.Page)},
		"limit": {strconv.Itoa(opts.Limit)},
	}
	if err := api.Get(ctx, "api/v2/wallets/"+address+"/transactions", query, &resp); err != nil {
		return nil, err
	}

	page := &TransactionPage{
		Transactions: make([]*Transaction, 0, len(resp.Data)),
		TotalCount:   resp.Meta.TotalCount,
	}
	for _, tx := range resp.Data {
		page.Transactions = append(page.Transactions, normalizeV2Transaction(tx))
	}
	enrichTransactions(page.Transactions, address)
	return page, nil
}

func (apiV2) wallet(ctx context.Context, api *nodeapi.Client, address string) (*Wallet, error) {
	var resp struct {
		Data *v2Wallet `json:"data"`
	}
	if err := api.Get(ctx, "api/v2/wallets/"+address, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}
	return normalizeV2Wallet(resp.Data), nil
}

func (apiV2) walletVote(ctx context.Context, api *nodeapi.Client, address string) (*WalletVote, error) {
	var resp struct {
		Data []struct {
			Asset struct {
				Votes []string `json:"votes"`
			} `json:"asset"`
		} `json:"data"`
	}
	if err := api.Get(ctx, "api/v2/wallets/"+address+"/votes", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Asset.Votes) == 0 {
		return &WalletVote{}, nil
	}
	return &WalletVote{
		PublicKey: extractVoteTarget(resp.Data[0].Asset.Votes[0]),
		Voted:     true,
	}, nil
}

func (apiV2) peers(ctx context.Context, api *nodeapi.Client) ([]*state.Peer, error) {
	var resp struct {
		Data []struct {
			IP      string `json:"ip"`
			Port    int    `json:"port"`
			Version string `json:"version"`
			Height  int64  `json:"height"`
			Latency int64  `json:"latency"`
		} `json:"data"`
	}
	if err := api.Get(ctx, "api/v2/peers", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]*state.Peer, 0, len(resp.Data))
	for _, p := range resp.Data {
		out = append(out, &state.Peer{
			IP:      p.IP,
			Port:    p.Port,
			Version: p.Version,
			Height:  p.Height,
			Latency: p.Latency,
		})
	}
	return out, nil
}

func (apiV2) broadcast(ctx context.Context, api *nodeapi.Client, txs []*txbuilder.SignedTransaction) (json.RawMessage, error) {
	var resp json.RawMessage
	body := map[string]interface{}{"transactions": txs}
	if err := api.Post(ctx, "api/v2/transactions", body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
