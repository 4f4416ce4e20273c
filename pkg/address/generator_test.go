package address

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func keyFor(passphrase string) *btcec.PrivateKey {
	h := sha256.Sum256([]byte(passphrase))
	priv, _ := btcec.PrivKeyFromBytes(h[:])
	return priv
}

func TestFromPublicKeyAndValidate(t *testing.T) {
	pub := keyFor("this is a top secret passphrase").PubKey()

	addr := FromPublicKey(pub, MainnetVersion)
	if addr == "" {
		t.Fatal("地址不应为空")
	}
	// 主网地址以 A 开头 (版本前缀 0x17)
	if addr[0] != 'A' {
		t.Errorf("主网地址应以 A 开头: %s", addr)
	}

	if err := Validate(addr, MainnetVersion); err != nil {
		t.Errorf("自己生成的地址应通过校验: %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not-an-address", MainnetVersion); err == nil {
		t.Error("乱码应校验失败")
	}
	// 版本前缀不匹配
	other := FromPublicKey(keyFor("x").PubKey(), 0x1e)
	if err := Validate(other, MainnetVersion); err == nil {
		t.Error("版本不匹配的地址应校验失败")
	}
}

func TestFromPublicKeyDeterministic(t *testing.T) {
	pub := keyFor("same input").PubKey()
	if FromPublicKey(pub, MainnetVersion) != FromPublicKey(pub, MainnetVersion) {
		t.Error("同一公钥必须推导出同一地址")
	}
}
