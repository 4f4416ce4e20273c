package txbuilder

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"time"

	"wallet-client/pkg/crypto_util"
)

// 交易类型
const (
	KindTransfer             uint8 = 0
	KindSecondSignature      uint8 = 1
	KindDelegateRegistration uint8 = 2
	KindVote                 uint8 = 3
)

// Epoch 是链上时间戳的纪元起点, 交易时间戳为从此刻起的秒数
var Epoch = time.Date(2017, 3, 21, 13, 0, 0, 0, time.UTC)

// 各交易类型的默认手续费 (最小币单位)
var DefaultFees = map[uint8]int64{
	KindTransfer:             10000000,
	KindSecondSignature:      500000000,
	KindDelegateRegistration: 2500000000,
	KindVote:                 100000000,
}

// Asset 是交易的类型相关负载
type Asset struct {
	Votes     []string        `json:"votes,omitempty"`
	Delegate  *DelegateAsset  `json:"delegate,omitempty"`
	Signature *SignatureAsset `json:"signature,omitempty"`
}

type DelegateAsset struct {
	Username string `json:"username"`
}

type SignatureAsset struct {
	PublicKey string `json:"publicKey"`
}

// SignedTransaction 是签名完成后提取出的不可变交易结构, 可直接广播。
type SignedTransaction struct {
	ID              string `json:"id,omitempty"`
	Type            uint8  `json:"type"`
	Timestamp       int32  `json:"timestamp"`
	SenderPublicKey string `json:"senderPublicKey,omitempty"`
	RecipientID     string `json:"recipientId,omitempty"`
	Amount          int64  `json:"amount"`
	Fee             int64  `json:"fee"`
	VendorField     string `json:"vendorField,omitempty"`
	Asset           *Asset `json:"asset,omitempty"`
	Signature       string `json:"signature,omitempty"`
	SignSignature   string `json:"signSignature,omitempty"`
}

// Draft 是签名前的可变交易装配体。
// 生命周期: 每次构建调用新建一个, Struct() 提取后丢弃, 不跨调用复用。
type Draft struct {
	kind         uint8
	timestamp    int32
	amount       int64
	fee          int64
	recipient    string
	vendorField  string
	asset        *Asset
	senderPubKey []byte
	signature    []byte
	secondSig    []byte
	err          error
}

func newDraft(kind uint8) *Draft {
	return &Draft{
		kind:      kind,
		timestamp: int32(time.Since(Epoch) / time.Second),
		fee:       DefaultFees[kind],
		asset:     &Asset{},
	}
}

// WithFee 覆盖默认手续费
func (d *Draft) WithFee(fee int64) *Draft {
	if fee > 0 {
		d.fee = fee
	}
	return d
}

// WithTimestamp 覆盖装配时刻的时间戳 (测试用)
func (d *Draft) WithTimestamp(ts int32) *Draft {
	d.timestamp = ts
	return d
}

// payloadBytes 生成签名用的确定性字节序列。
// includeSignature 为 true 时把一签也写入 (二签和交易 ID 都要覆盖一签)。
func (d *Draft) payloadBytes(includeSignature bool, includeSecond bool) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(d.kind)
	binary.Write(buf, binary.LittleEndian, d.timestamp)
	buf.Write(d.senderPubKey)

	// 收款人固定占位, 无收款人时填零
	recipient := make([]byte, 21)
	copy(recipient, d.recipient)
	buf.Write(recipient)

	// 备注固定 64 字节占位
	vendor := make([]byte, 64)
	copy(vendor, d.vendorField)
	buf.Write(vendor)

	binary.Write(buf, binary.LittleEndian, d.amount)
	binary.Write(buf, binary.LittleEndian, d.fee)

	switch d.kind {
	case KindVote:
		for _, v := range d.asset.Votes {
			buf.WriteString(v)
		}
	case KindDelegateRegistration:
		if d.asset.Delegate != nil {
			buf.WriteString(d.asset.Delegate.Username)
		}
	case KindSecondSignature:
		if d.asset.Signature != nil {
			if raw, err := hex.DecodeString(d.asset.Signature.PublicKey); err == nil {
				buf.Write(raw)
			}
		}
	}

	if includeSignature && len(d.signature) > 0 {
		buf.Write(d.signature)
	}
	if includeSecond && len(d.secondSig) > 0 {
		buf.Write(d.secondSig)
	}

	return buf.Bytes()
}

// Struct 提取最终交易结构。
// 未签名的草稿也能提取 (得到无签名、不可广播的结构), 由节点侧拒绝。
func (d *Draft) Struct() (*SignedTransaction, error) {
	if d.err != nil {
		return nil, d.err
	}

	tx := &SignedTransaction{
		Type:        d.kind,
		Timestamp:   d.timestamp,
		RecipientID: d.recipient,
		Amount:      d.amount,
		Fee:         d.fee,
		VendorField: d.vendorField,
		Asset:       d.asset,
	}
	if len(d.senderPubKey) > 0 {
		tx.SenderPublicKey = hex.EncodeToString(d.senderPubKey)
	}
	if len(d.signature) > 0 {
		tx.Signature = hex.EncodeToString(d.signature)
	}
	if len(d.secondSig) > 0 {
		tx.SignSignature = hex.EncodeToString(d.secondSig)
	}
	if len(d.signature) > 0 {
		tx.ID = crypto_util.CalculateSHA256(d.payloadBytes(true, true))
	}
	return tx, nil
}
