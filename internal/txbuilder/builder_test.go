package txbuilder

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"wallet-client/pkg/crypto_util"
)

const testPassphrase = "this is a top secret passphrase"

func TestBuildTransfer(t *testing.T) {
	tx, err := Build(NewTransfer(133380000000, "AXoXnFi4z1Z6aFvjEYkDVCtBGW2PaRiM25", "备注"), SignOptions{
		Passphrase: testPassphrase,
	})
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	if tx.Type != KindTransfer {
		t.Errorf("type = %d", tx.Type)
	}
	if tx.Fee != DefaultFees[KindTransfer] {
		t.Errorf("应使用默认手续费, got %d", tx.Fee)
	}
	// 只给一签: 必须恰好一个签名
	if tx.Signature == "" {
		t.Fatal("一签缺失")
	}
	if tx.SignSignature != "" {
		t.Error("未给二签口令却出现了 signSignature")
	}
	if tx.ID == "" {
		t.Error("已签名交易必须有 ID")
	}
	if tx.SenderPublicKey == "" {
		t.Error("签名后必须携带发送方公钥")
	}
}

func TestBuildSignatureVerifies(t *testing.T) {
	d := NewTransfer(100, "AXoXnFi4z1Z6aFvjEYkDVCtBGW2PaRiM25", "")
	tx, err := Build(d, SignOptions{Passphrase: testPassphrase})
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	// 用发送方公钥验证 DER 签名
	sigBytes, err := hex.DecodeString(tx.Signature)
	if err != nil {
		t.Fatalf("签名不是合法 hex: %v", err)
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		t.Fatalf("签名不是合法 DER: %v", err)
	}

	pub := KeyFromPassphrase(testPassphrase).PubKey()
	digest := crypto_util.SHA256Bytes(d.payloadBytes(false, false))
	if !sig.Verify(digest, pub) {
		t.Error("签名验证失败")
	}
}

func TestBuildPassphrasePrecedence(t *testing.T) {
	// 用另一个口令的私钥编出 WIF, 保证两份凭据指向不同密钥
	otherKey := KeyFromPassphrase("another passphrase entirely")
	wif, err := btcutil.NewWIF(otherKey, &chaincfg.MainNetParams, true)
	if err != nil {
		t.Fatalf("WIF 编码失败: %v", err)
	}

	// 同时给口令和 WIF 时, 口令优先
	wifOnly, err := Build(NewTransfer(1, "A", "").WithTimestamp(1000), SignOptions{
		WIF: wif.String(),
	})
	if err != nil {
		t.Fatalf("WIF 构建失败: %v", err)
	}
	both, err := Build(NewTransfer(1, "A", "").WithTimestamp(1000), SignOptions{
		Passphrase: testPassphrase,
		WIF:        wif.String(),
	})
	if err != nil {
		t.Fatalf("双凭据构建失败: %v", err)
	}

	passOnly, err := Build(NewTransfer(1, "A", "").WithTimestamp(1000), SignOptions{
		Passphrase: testPassphrase,
	})
	if err != nil {
		t.Fatalf("口令构建失败: %v", err)
	}

	if both.SenderPublicKey != passOnly.SenderPublicKey {
		t.Error("双凭据时应使用口令推导的密钥")
	}
	if both.SenderPublicKey == wifOnly.SenderPublicKey {
		t.Error("口令与 WIF 推导出了相同公钥, 优先级无法验证")
	}
}

func TestBuildUnsigned(t *testing.T) {
	// 不给任何凭据: 结构可提取但没有签名和 ID
	tx, err := Build(NewVote([]string{"+02af"}), SignOptions{})
	if err != nil {
		t.Fatalf("未签名构建失败: %v", err)
	}
	if tx.Signature != "" || tx.ID != "" {
		t.Errorf("未签名交易不应有签名或 ID: %+v", tx)
	}
}

func TestBuildSecondSignature(t *testing.T) {
	tx, err := Build(NewSecondSignature("second passphrase"), SignOptions{
		Passphrase:       testPassphrase,
		SecondPassphrase: "second passphrase",
	})
	if err != nil {
		t.Fatalf("二签注册构建失败: %v", err)
	}

	// 二签注册交易本身永远不应用二签
	if tx.SignSignature != "" {
		t.Error("二签注册交易不应携带 signSignature")
	}
	if tx.Asset == nil || tx.Asset.Signature == nil {
		t.Fatal("二签注册必须携带 signature asset")
	}
	wantPub := hex.EncodeToString(KeyFromPassphrase("second passphrase").PubKey().SerializeCompressed())
	if tx.Asset.Signature.PublicKey != wantPub {
		t.Errorf("asset 公钥应由第二口令推导: got %s", tx.Asset.Signature.PublicKey)
	}
}

func TestBuildTransferWithSecondSign(t *testing.T) {
	tx, err := Build(NewTransfer(100, "A", ""), SignOptions{
		Passphrase:       testPassphrase,
		SecondPassphrase: "second passphrase",
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if tx.Signature == "" || tx.SignSignature == "" {
		t.Error("转账 + 二签应同时携带两个签名")
	}
}

func TestSecondSignRequiresFirst(t *testing.T) {
	d := NewTransfer(100, "A", "")
	d.SecondSign("second passphrase")
	if _, err := d.Struct(); err == nil {
		t.Error("没有一签时二签应报错")
	}
}

func TestBuildCustomFee(t *testing.T) {
	tx, err := Build(NewVote([]string{"+02af"}), SignOptions{
		Passphrase: testPassphrase,
		Fee:        12345,
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if tx.Fee != 12345 {
		t.Errorf("fee = %d, want 12345", tx.Fee)
	}
}

func TestVoteAsset(t *testing.T) {
	tx, err := Build(NewVote([]string{"+02af"}), SignOptions{Passphrase: testPassphrase})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	if tx.Asset == nil || len(tx.Asset.Votes) != 1 || tx.Asset.Votes[0] != "+02af" {
		t.Errorf("投票 asset 错误: %+v", tx.Asset)
	}
	if tx.Fee != DefaultFees[KindVote] {
		t.Errorf("投票默认手续费错误: %d", tx.Fee)
	}
}
