package txbuilder

import (
	"encoding/hex"
)

// SignOptions 控制签名流程。
// Passphrase 与 WIF 二选一, 同时给出时 Passphrase 优先;
// 都不给则返回未签名 (不可广播) 的结构, 由节点侧拒绝。
type SignOptions struct {
	Passphrase       string
	WIF              string
	SecondPassphrase string
	Fee              int64
}

// NewVote 创建投票交易草稿。
// votes: 形如 "+publicKey" / "-publicKey" 的投票列表。
func NewVote(votes []string) *Draft {
	d := newDraft(KindVote)
	d.asset.Votes = votes
	return d
}

// NewDelegateRegistration 创建受托人注册草稿
func NewDelegateRegistration(username string) *Draft {
	d := newDraft(KindDelegateRegistration)
	d.asset.Delegate = &DelegateAsset{Username: username}
	return d
}

// NewTransfer 创建转账草稿
func NewTransfer(amount int64, recipientID string, vendorField string) *Draft {
	d := newDraft(KindTransfer)
	d.amount = amount
	d.recipient = recipientID
	d.vendorField = vendorField
	return d
}

// NewSecondSignature 创建二签注册草稿。
// asset 携带由第二口令推导出的公钥。
func NewSecondSignature(secondPassphrase string) *Draft {
	d := newDraft(KindSecondSignature)
	pub := KeyFromPassphrase(secondPassphrase).PubKey()
	d.asset.Signature = &SignatureAsset{
		PublicKey: hex.EncodeToString(pub.SerializeCompressed()),
	}
	return d
}

// Build 执行固定的签名流水线并提取最终结构:
// 一签 (passphrase 优先于 WIF) -> 可选二签 -> Struct()。
// 二签注册交易本身永远不应用二签步骤。
func Build(d *Draft, opts SignOptions) (*SignedTransaction, error) {
	d.WithFee(opts.Fee)

	if opts.Passphrase != "" {
		d.SignWithPassphrase(opts.Passphrase)
	} else if opts.WIF != "" {
		d.SignWithWIF(opts.WIF)
	}

	if opts.SecondPassphrase != "" && d.kind != KindSecondSignature {
		d.SecondSign(opts.SecondPassphrase)
	}

	return d.Struct()
}
