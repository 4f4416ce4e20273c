package client

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// FlexInt 容忍字符串或数字两种来源的整数金额。
// v1 节点把余额序列化成字符串, v2 是数字, 规范形态恒为整数。
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	*f = FlexInt(d.IntPart())
	return nil
}

// ---- v1 原始形态 ----

type v1Account struct {
	Address              string          `json:"address"`
	PublicKey            string          `json:"publicKey"`
	SecondPublicKey      string          `json:"secondPublicKey"`
	Balance              FlexInt         `json:"balance"`
	Username             string          `json:"username"`
	UnconfirmedBalance   FlexInt         `json:"unconfirmedBalance"`
	UnconfirmedSignature int             `json:"unconfirmedSignature"`
	SecondSignature      int             `json:"secondSignature"`
	Multisignatures      []string        `json:"multisignatures"`
	UMultisignatures     []string        `json:"u_multisignatures"`
}

type v1Delegate struct {
	Username       string  `json:"username"`
	Address        string  `json:"address"`
	PublicKey      string  `json:"publicKey"`
	Vote           FlexInt `json:"vote"`
	ProducedBlocks int64   `json:"producedblocks"`
	MissedBlocks   int64   `json:"missedblocks"`
	Rate           int     `json:"rate"`
	Approval       float64 `json:"approval"`
	Productivity   float64 `json:"productivity"`
}

type v1Transaction struct {
	ID          string  `json:"id"`
	SenderID    string  `json:"senderId"`
	RecipientID string  `json:"recipientId"`
	Amount      FlexInt `json:"amount"`
	Fee         FlexInt `json:"fee"`
	VendorField string  `json:"vendorField"`
	Timestamp   int64   `json:"timestamp"` // epoch 起的秒数
}

// ---- v2 原始形态 ----

type v2Wallet struct {
	Address         string  `json:"address"`
	PublicKey       string  `json:"publicKey"`
	SecondPublicKey string  `json:"secondPublicKey"`
	Balance         FlexInt `json:"balance"`
	IsDelegate      bool    `json:"isDelegate"`
}

type v2Delegate struct {
	Username   string             `json:"username"`
	Address    string             `json:"address"`
	PublicKey  string             `json:"publicKey"`
	Votes      FlexInt            `json:"votes"`
	Rank       int                `json:"rank"`
	Blocks     DelegateBlocks     `json:"blocks"`
	Production DelegateProduction `json:"production"`
	Forged     *Forged            `json:"forged"`
}

type v2Timestamp struct {
	Epoch int64  `json:"epoch"`
	Unix  int64  `json:"unix"`
	Human string `json:"human"`
}

type v2Transaction struct {
	ID          string      `json:"id"`
	Sender      string      `json:"sender"`
	Recipient   string      `json:"recipient"`
	Amount      FlexInt     `json:"amount"`
	Fee         FlexInt     `json:"fee"`
	VendorField string      `json:"vendorField"`
	Timestamp   v2Timestamp `json:"timestamp"`
}

// ---- 规范化 (纯函数) ----

// normalizeV1Account 把 v1 账户整形成规范钱包。
// 旧版独有字段 (未确认余额/签名, 多签列表) 被剥离;
// IsDelegate 由用户名是否存在推导。
func normalizeV1Account(acc *v1Account) *Wallet {
	return &Wallet{
		Address:         acc.Address,
		PublicKey:       acc.PublicKey,
		SecondPublicKey: acc.SecondPublicKey,
		Balance:         int64(acc.Balance),
		IsDelegate:      acc.Username != "",
	}
}

func normalizeV2Wallet(w *v2Wallet) *Wallet {
	return &Wallet{
		Address:         w.Address,
		PublicKey:       w.PublicKey,
		SecondPublicKey: w.SecondPublicKey,
		Balance:         int64(w.Balance),
		IsDelegate:      w.IsDelegate,
	}
}

// normalizeV1Delegate 把 v1 的扁平旧字段名重映射到 v2 的嵌套形态
// (producedblocks -> blocks.produced, rate -> rank 等)。
func normalizeV1Delegate(d *v1Delegate) *Delegate {
	return &Delegate{
		Username:  d.Username,
		Address:   d.Address,
		PublicKey: d.PublicKey,
		Votes:     int64(d.Vote),
		Rank:      d.Rate,
		Blocks: DelegateBlocks{
			Produced: d.ProducedBlocks,
			Missed:   d.MissedBlocks,
		},
		Production: DelegateProduction{
			Approval:     d.Approval,
			Productivity: d.Productivity,
		},
	}
}

func normalizeV2Delegate(d *v2Delegate) *Delegate {
	return &Delegate{
		Username:   d.Username,
		Address:    d.Address,
		PublicKey:  d.PublicKey,
		Votes:      int64(d.Votes),
		Rank:       d.Rank,
		Blocks:     d.Blocks,
		Production: d.Production,
		Forged:     d.Forged,
	}
}

// normalizeV1Transaction 用网络纪元重建绝对时间: epoch + seconds。
func normalizeV1Transaction(tx *v1Transaction, epoch time.Time) *Transaction {
	return &Transaction{
		ID:          tx.ID,
		Sender:      tx.SenderID,
		Recipient:   tx.RecipientID,
		Amount:      int64(tx.Amount),
		Fee:         int64(tx.Fee),
		VendorField: tx.VendorField,
		Timestamp:   epoch.Add(time.Duration(tx.Timestamp) * time.Second),
	}
}

func normalizeV2Transaction(tx *v2Transaction) *Transaction {
	return &Transaction{
		ID:          tx.ID,
		Sender:      tx.Sender,
		Recipient:   tx.Recipient,
		Amount:      int64(tx.Amount),
		Fee:         int64(tx.Fee),
		VendorField: tx.VendorField,
		Timestamp:   time.Unix(tx.Timestamp.Unix, 0).UTC(),
	}
}

// enrichTransactions 是版本无关的补全: TotalAmount 以及相对查询地址的
// 方向标记。方向只允许由与 address 的相等比较得出。
func enrichTransactions(txs []*Transaction, address string) {
	for _, tx := range txs {
		tx.TotalAmount = tx.Amount + tx.Fee
		tx.IsSender = tx.Sender == address
		tx.IsReceiver = tx.Recipient == address
	}
}

// extractVoteTarget 从 v2 的原始投票串提取受托人公钥:
// 去掉单字符类型前缀 ("+"/"-")。
func extractVoteTarget(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	return raw[1:]
}
