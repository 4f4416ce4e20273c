package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"wallet-client/pkg/crypto_util"
)

// MainnetVersion 是主网地址的 base58check 版本前缀
const MainnetVersion byte = 0x17

// FromPublicKey 从压缩公钥推导钱包地址。
// 流程: base58check(version || ripemd160(sha256(pubkey)))
func FromPublicKey(pubKey *btcec.PublicKey, version byte) string {
	payload := crypto_util.Ripemd160OfSHA256(pubKey.SerializeCompressed())
	return base58.CheckEncode(payload, version)
}

// Validate 检查地址是否是合法的 base58check 编码且版本匹配。
func Validate(addr string, version byte) error {
	_, v, err := base58.CheckDecode(addr)
	if err != nil {
		return fmt.Errorf("地址解码失败: %w", err)
	}
	if v != version {
		return fmt.Errorf("地址版本不匹配: got 0x%02x, want 0x%02x", v, version)
	}
	return nil
}
