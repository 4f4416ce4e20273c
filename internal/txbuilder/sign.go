package txbuilder

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"

	"wallet-client/pkg/crypto_util"
)

// KeyFromPassphrase 从口令推导 secp256k1 私钥: key = sha256(passphrase)。
func KeyFromPassphrase(passphrase string) *btcec.PrivateKey {
	h := sha256.Sum256([]byte(passphrase))
	priv, _ := btcec.PrivKeyFromBytes(h[:])
	return priv
}

// KeyFromWIF 解码 WIF 编码的私钥
func KeyFromWIF(wif string) (*btcec.PrivateKey, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("解码 WIF 失败: %w", err)
	}
	return decoded.PrivKey, nil
}

// SignWithPassphrase 应用口令一签。
// 草稿已有一签时是 no-op —— 主签名只允许应用一次。
func (d *Draft) SignWithPassphrase(passphrase string) *Draft {
	if d.err != nil || len(d.signature) > 0 {
		return d
	}
	return d.signWith(KeyFromPassphrase(passphrase))
}

// SignWithWIF 应用 WIF 一签, 语义同 SignWithPassphrase。
func (d *Draft) SignWithWIF(wif string) *Draft {
	if d.err != nil || len(d.signature) > 0 {
		return d
	}
	priv, err := KeyFromWIF(wif)
	if err != nil {
		d.err = err
		return d
	}
	return d.signWith(priv)
}

func (d *Draft) signWith(priv *btcec.PrivateKey) *Draft {
	d.senderPubKey = priv.PubKey().SerializeCompressed()
	digest := crypto_util.SHA256Bytes(d.payloadBytes(false, false))
	d.signature = ecdsa.Sign(priv, digest).Serialize()
	return d
}

// SecondSign 应用二签。要求一签已存在; 签名内容覆盖一签。
func (d *Draft) SecondSign(secondPassphrase string) *Draft {
	if d.err != nil {
		return d
	}
	if len(d.signature) == 0 {
		d.err = fmt.Errorf("二签前必须先有一签")
		return d
	}
	priv := KeyFromPassphrase(secondPassphrase)
	digest := crypto_util.SHA256Bytes(d.payloadBytes(true, false))
	d.secondSig = ecdsa.Sign(priv, digest).Serialize()
	return d
}
