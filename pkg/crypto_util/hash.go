package crypto_util

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/ripemd160"
	"lukechampine.com/blake3"
)

// CalculateSHA256 计算输入的 SHA256 哈希值。
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SHA256Bytes 返回原始的 SHA256 摘要 (签名流程需要字节而不是 hex 字符串)。
func SHA256Bytes(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// Ripemd160OfSHA256 先做 SHA256 再做 RIPEMD160。
// 这是从公钥推导钱包地址时使用的哈希组合。
func Ripemd160OfSHA256(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// Blake3ID 计算一个短的 Blake3 标识 (hex, 16 字节)。
// 用于节点去重等非安全场景, 比 SHA256 更快。
func Blake3ID(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
