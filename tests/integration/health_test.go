package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestHealthCheck 集成测试示例
// 它假设 wallet-server 已经在运行 (例如通过 Docker Compose)
// 运行命令: go test -v ./tests/integration/...
func TestHealthCheck(t *testing.T) {
	// 1. 设置目标 URL (通常从环境变量读取)
	baseURL := "http://localhost:8080"

	// 2. 发起请求
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health")

	// 3. 断言结果
	if err != nil {
		t.Skip("Skipping integration test: server not running? " + err.Error())
		return
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// 4. 响应应该是统一信封, code = 0
	var body struct {
		Code int `json:"code"`
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "UP", body.Data.Status)
}
