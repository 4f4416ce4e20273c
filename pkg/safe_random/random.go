package safe_random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateRandomBytes 生成 n 字节密码学安全的随机数
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("读取随机源失败: %w", err)
	}
	return b, nil
}

// GenerateRandomHexString 生成 n 字节随机数并编码为 hex 字符串
func GenerateRandomHexString(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandomInt 生成 [0, max) 区间内的随机整数
func GenerateRandomInt(max *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, max)
}
