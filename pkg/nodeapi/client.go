package nodeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout 普通调用不强制超时由上层决定, 这里只是 http.Client 的兜底
const DefaultTimeout = 30 * time.Second

// Client 是对节点 REST API 的最小封装。
// 它只负责请求/响应机制, 不理解任何版本语义 —— 版本差异由上层的
// 资源策略 (v1/v2) 决定路径和解码方式。
type Client struct {
	base    string
	version int
	http    *http.Client
}

// New 创建绑定到某个 host + API 版本的传输客户端。
// host 形如 "http://1.2.3.4:4003", 不做合法性校验 (坏地址在首次调用时暴露)。
func New(host string, version int) *Client {
	return &Client{
		base:    strings.TrimRight(host, "/"),
		version: version,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// WithTimeout 返回一个超时覆盖后的副本, 只影响该副本发出的请求。
func (c *Client) WithTimeout(d time.Duration) *Client {
	clone := *c
	clone.http = &http.Client{Timeout: d}
	return &clone
}

// Host 返回绑定的基础地址
func (c *Client) Host() string { return c.base }

// Version 返回绑定的 API 版本
func (c *Client) Version() int { return c.version }

// Get 发起 GET 请求并把 JSON 响应解码到 out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post 发起 POST 请求 (JSON body) 并把响应解码到 out
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}

	u := c.base + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	// 老版本节点通过该 Header 区分客户端 API 方言
	req.Header.Set("API-Version", strconv.Itoa(c.version))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("节点返回 %d: %s", resp.StatusCode, truncate(data, 256))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解码节点响应失败 (%s): %w", req.URL.Path, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
