package client

import (
	"sync"
	"testing"

	"wallet-client/internal/state"
)

func TestConnectionDefaults(t *testing.T) {
	// 空 host 落到占位地址, 绑定永不为空
	conn := NewConnection("", 0)
	target := conn.Target()
	if target.Host != PlaceholderHost {
		t.Errorf("空 host 应回退占位地址, got %q", target.Host)
	}
	// 非 1 的版本一律归一成 2
	if target.Version != 2 {
		t.Errorf("version 0 应归一成 2, got %d", target.Version)
	}
}

func TestConnectionStrategySelection(t *testing.T) {
	conn := NewConnection("http://a:4003", 1)
	if _, ok := conn.snapshot().res.(apiV1); !ok {
		t.Error("v1 绑定应选择 v1 策略")
	}

	conn.SetVersion(2)
	if _, ok := conn.snapshot().res.(apiV2); !ok {
		t.Error("切到 v2 后应选择 v2 策略")
	}
}

func TestConnectionSetHostKeepsVersion(t *testing.T) {
	conn := NewConnection("http://a:4003", 1)
	conn.SetHost("http://b:4003")
	target := conn.Target()
	if target.Host != "http://b:4003" || target.Version != 1 {
		t.Errorf("SetHost 不应改版本: %+v", target)
	}
}

// 绑定是单指针原子交换: 并发重绑定下每个快照必须内部一致
// (target 版本与策略类型永远配对)。
func TestConnectionConcurrentRebind(t *testing.T) {
	conn := NewConnection("http://a:4003", 1)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			conn.SetTarget(Target{Host: "http://v1:4003", Version: 1})
			conn.SetTarget(Target{Host: "http://v2:4003", Version: 2})
		}
		close(stop)
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			return
		default:
		}
		b := conn.snapshot()
		_, isV1 := b.res.(apiV1)
		if isV1 != (b.target.Version == 1) {
			t.Fatalf("快照不一致: version=%d 策略 v1=%v", b.target.Version, isV1)
		}
	}
}

func TestTargetFromPeer(t *testing.T) {
	p := &state.Peer{IP: "1.2.3.4", Port: 4003, Version: "2.1.0"}
	target := TargetFromPeer(p)
	if target.Version != 2 {
		t.Errorf("版本 2.1.0 应推导出 v2, got %d", target.Version)
	}
	if target.Host != "http://1.2.3.4:4003" {
		t.Errorf("host = %q", target.Host)
	}

	p.Version = "1.0.0"
	if got := TargetFromPeer(p).Version; got != 1 {
		t.Errorf("版本 1.0.0 应推导出 v1, got %d", got)
	}

	// "20.x" 不以 "2." 开头之外的歧义串: 必须精确匹配前缀
	p.Version = "20.0.0"
	if got := TargetFromPeer(p).Version; got != 1 {
		t.Errorf("版本 20.0.0 不应匹配 v2, got %d", got)
	}
}
