package peeraddr

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Address 是从连接 URL 中提取出来的节点地址三元组
type Address struct {
	Scheme string
	IP     string
	Port   int
}

// Parse 从连接 URL 中提取 host/port/scheme。
// 没有显式端口时按 scheme 推断 (http=80, https=443)。
func Parse(raw string) (*Address, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("解析节点地址失败: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("节点地址缺少主机名: %q", raw)
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("无效的端口 %q: %w", p, err)
		}
	}

	return &Address{
		Scheme: u.Scheme,
		IP:     u.Hostname(),
		Port:   port,
	}, nil
}

// String 还原为 scheme://ip:port 形式的 URL
func (a *Address) String() string {
	return fmt.Sprintf("%s://%s:%d", a.Scheme, a.IP, a.Port)
}
