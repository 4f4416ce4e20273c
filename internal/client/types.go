package client

import (
	"encoding/json"
	"time"
)

// 本包对外只暴露规范形态 (canonical shape):
// 任何实体都不允许带着 v1/v2 的原始字段穿过这一层。

// Wallet 是版本无关的钱包形态。Balance 恒为整数 (最小币单位)。
type Wallet struct {
	Address         string `json:"address"`
	PublicKey       string `json:"publicKey"`
	SecondPublicKey string `json:"secondPublicKey,omitempty"`
	Balance         int64  `json:"balance"`
	IsDelegate      bool   `json:"isDelegate"`
}

// Transaction 是版本无关的交易形态。
// TotalAmount = Amount + Fee; IsSender/IsReceiver 相对查询地址计算。
type Transaction struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	Recipient   string    `json:"recipient"`
	Amount      int64     `json:"amount"`
	Fee         int64     `json:"fee"`
	TotalAmount int64     `json:"totalAmount"`
	VendorField string    `json:"vendorField,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	IsSender    bool      `json:"isSender"`
	IsReceiver  bool      `json:"isReceiver"`
}

// TransactionPage 一页交易。
// SoftFailed 标记 v1 的软失败: 空结果既可能是"没有", 也可能是"请求失败"。
type TransactionPage struct {
	Transactions []*Transaction `json:"transactions"`
	TotalCount   int            `json:"totalCount"`
	SoftFailed   bool           `json:"-"`
}

// Delegate 受托人, 统一到 v2 的嵌套形态
type Delegate struct {
	Username   string             `json:"username"`
	Address    string             `json:"address"`
	PublicKey  string             `json:"publicKey"`
	Votes      int64              `json:"votes"`
	Rank       int                `json:"rank"`
	Blocks     DelegateBlocks     `json:"blocks"`
	Production DelegateProduction `json:"production"`
	Forged     *Forged            `json:"forged,omitempty"`
}

type DelegateBlocks struct {
	Produced int64 `json:"produced"`
	Missed   int64 `json:"missed"`
}

type DelegateProduction struct {
	Approval     float64 `json:"approval"`
	Productivity float64 `json:"productivity"`
}

type Forged struct {
	Fees    int64 `json:"fees"`
	Rewards int64 `json:"rewards"`
	Total   int64 `json:"total"`
}

type DelegatePage struct {
	Delegates  []*Delegate `json:"delegates"`
	TotalCount int         `json:"totalCount"`
	SoftFailed bool        `json:"-"`
}

// WalletVote 钱包的当前投票。
// Voted=false 表示未投票; SoftFailed 区分 v1 的"失败还是没投"。
type WalletVote struct {
	PublicKey  string `json:"publicKey,omitempty"`
	Voted      bool   `json:"voted"`
	SoftFailed bool   `json:"-"`
}

// PeerStatus 节点状态。语义本身就是版本相关的 (节点设计如此),
// 这里只做最小整形, 原始负载保留在 Raw 里。
type PeerStatus struct {
	Height  int64           `json:"height"`
	Syncing bool            `json:"syncing"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// NetworkConfig 探测候选节点时拿到的网络配置
type NetworkConfig struct {
	Nethash  string          `json:"nethash"`
	Token    string          `json:"token"`
	Symbol   string          `json:"symbol"`
	Explorer string          `json:"explorer"`
	Version  int             `json:"version"` // 地址版本前缀
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// TransactionOptions 交易列表查询参数
type TransactionOptions struct {
	Page    int
	Limit   int
	OrderBy string
}

// 缺省值: {page:0, limit:50, orderBy:"timestamp:desc"}
func (o *TransactionOptions) applyDefaults() {
	if o.Limit == 0 {
		o.Limit = 50
	}
	if o.OrderBy == "" {
		o.OrderBy = "timestamp:desc"
	}
}
