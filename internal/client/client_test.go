package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet-client/internal/state"
)

const testAddr = "AdWRsk7Lbo8AhYGLvMxXmpiwAMBMBL64pX"

func newTestClient(t *testing.T, version int, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conn := NewConnection(srv.URL, version)
	return New(conn, nil, nil), srv
}

func TestFetchWalletV1(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != testAddr {
			t.Errorf("address 参数 = %q", got)
		}
		// v1: 余额是字符串, 带旧版字段
		w.Write([]byte(`{
			"success": true,
			"account": {
				"address": "` + testAddr + `",
				"balance": "100",
				"username": "bob",
				"unconfirmedBalance": "999",
				"unconfirmedSignature": 1
			}
		}`))
	})

	cli, _ := newTestClient(t, 1, mux)
	wallet, err := cli.FetchWallet(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("FetchWallet 失败: %v", err)
	}
	if wallet == nil {
		t.Fatal("钱包不应为 nil")
	}
	if wallet.Balance != 100 {
		t.Errorf("余额 = %d, want 100", wallet.Balance)
	}
	if !wallet.IsDelegate {
		t.Error("有用户名应推导出 isDelegate = true")
	}
}

func TestFetchWalletV1NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "Account not found"}`))
	})

	cli, _ := newTestClient(t, 1, mux)
	wallet, err := cli.FetchWallet(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("未找到不应是错误: %v", err)
	}
	if wallet != nil {
		t.Errorf("未找到应返回 nil, got %+v", wallet)
	}
}

func TestFetchWalletV2(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/wallets/"+testAddr, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"address": "` + testAddr + `", "balance": 100, "isDelegate": true}}`))
	})

	cli, _ := newTestClient(t, 2, mux)
	wallet, err := cli.FetchWallet(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("FetchWallet 失败: %v", err)
	}
	if wallet.Balance != 100 || !wallet.IsDelegate {
		t.Errorf("v2 钱包整形错误: %+v", wallet)
	}
}

func TestFetchTransactionsV1Offset(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success": true, "transactions": [], "count": "0"}`))
	})

	cli, _ := newTestClient(t, 1, mux)
	// page 0 按源语义得到负 offset, 原样下发
	_, err := cli.FetchTransactions(context.Background(), testAddr, TransactionOptions{})
	if err != nil {
		t.Fatalf("FetchTransactions 失败: %v", err)
	}
	if got := gotQuery["offset"]; len(got) != 1 || got[0] != "-50" {
		t.Errorf("page 0 的 offset 应为 -50, got %v", got)
	}
	if got := gotQuery["orderBy"]; len(got) != 1 || got[0] != "timestamp:desc" {
		t.Errorf("v1 应下发默认 orderBy, got %v", got)
	}
	if got := gotQuery["senderId"]; len(got) != 1 || got[0] != testAddr {
		t.Errorf("senderId 参数错误: %v", got)
	}

	// page 2, limit 10 -> offset 10
	_, _ = cli.FetchTransactions(context.Background(), testAddr, TransactionOptions{Page: 2, Limit: 10})
	if got := gotQuery["offset"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("page 2/limit 10 的 offset 应为 10, got %v", got)
	}
}

func TestFetchTransactionsV2NoOrderBy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/wallets/"+testAddr+"/transactions", func(w http.ResponseWriter, r *http.Request) {
		// orderBy 接受但不下发
		if r.URL.Query().Has("orderBy") {
			t.Error("v2 查询不应携带 orderBy")
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		w.Write([]byte(`{
			"data": [{
				"id": "tx1",
				"sender": "` + testAddr + `",
				"recipient": "other",
				"amount": 100,
				"fee": 10,
				"timestamp": {"unix": 1580000000, "epoch": 90000000}
			}],
			"meta": {"totalCount": 1}
		}`))
	})

	cli, _ := newTestClient(t, 2, mux)
	page, err := cli.FetchTransactions(context.Background(), testAddr, TransactionOptions{OrderBy: "amount:asc"})
	if err != nil {
		t.Fatalf("FetchTransactions 失败: %v", err)
	}
	if page.TotalCount != 1 || len(page.Transactions) != 1 {
		t.Fatalf("分页结果不对: %+v", page)
	}
	tx := page.Transactions[0]
	if tx.TotalAmount != 110 || !tx.IsSender {
		t.Errorf("交易补全错误: %+v", tx)
	}
}

func TestFetchDelegatesV1SoftFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/delegates", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "Blockchain not ready"}`))
	})

	cli, _ := newTestClient(t, 1, mux)
	page, err := cli.FetchDelegates(context.Background())
	if err != nil {
		t.Fatalf("软失败不应转成错误: %v", err)
	}
	if len(page.Delegates) != 0 {
		t.Errorf("软失败应返回空列表, got %d", len(page.Delegates))
	}
	if !page.SoftFailed {
		t.Error("软失败应被标记")
	}
}

func TestFetchDelegateForgedShortCircuit(t *testing.T) {
	// 带 forged 数据时不应发请求
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("短路路径不应发请求: %s", r.URL.Path)
	})

	cli, _ := newTestClient(t, 2, mux)
	total, err := cli.FetchDelegateForged(context.Background(), &Delegate{
		PublicKey: "02af",
		Forged:    &Forged{Total: 777},
	})
	if err != nil {
		t.Fatalf("短路查询失败: %v", err)
	}
	if total != 777 {
		t.Errorf("total = %d, want 777", total)
	}
}

func TestFetchWalletVoteV2StripsPrefix(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/wallets/"+testAddr+"/votes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"asset": {"votes": ["+02af99"]}}]}`))
	})

	cli, _ := newTestClient(t, 2, mux)
	vote, err := cli.FetchWalletVote(context.Background(), testAddr)
	if err != nil {
		t.Fatalf("FetchWalletVote 失败: %v", err)
	}
	if !vote.Voted || vote.PublicKey != "02af99" {
		t.Errorf("投票整形错误: %+v", vote)
	}
}

func TestBroadcastV1Path(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/peer/transactions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Transactions []json.RawMessage `json:"transactions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("解析广播请求体失败: %v", err)
		}
		if len(body.Transactions) != 1 {
			t.Errorf("应提交 1 笔交易, got %d", len(body.Transactions))
		}
		w.Write([]byte(`{"success": true, "transactionIds": ["abc"]}`))
	})

	cli, _ := newTestClient(t, 1, mux)
	tx, err := cli.BuildTransfer(TransferInput{Amount: 1, RecipientID: testAddr})
	if err != nil {
		t.Fatalf("构建交易失败: %v", err)
	}
	raw, err := cli.BroadcastTransactions(context.Background(), tx)
	if err != nil {
		t.Fatalf("广播失败: %v", err)
	}
	if len(raw) == 0 {
		t.Error("广播应答不应为空")
	}
}

func TestFetchPeersFallbackToBoundHost(t *testing.T) {
	mux := http.NewServeMux()
	cli, srv := newTestClient(t, 2, mux)

	// 无网络且无起点时, 退化为当前绑定 host 的单节点起点
	d := &captureDiscovery{}
	cli.discovery = d
	if _, err := cli.FetchPeers(context.Background(), "", nil); err != nil {
		t.Fatalf("FetchPeers 失败: %v", err)
	}
	if len(d.seed) != 1 {
		t.Fatalf("起点应只有 1 个, got %d", len(d.seed))
	}
	if d.seed[0].Host() != srv.URL {
		t.Errorf("起点应是当前绑定 host: got %s, want %s", d.seed[0].Host(), srv.URL)
	}
}

type captureDiscovery struct {
	network string
	seed    []*state.Peer
}

func (c *captureDiscovery) Discover(_ context.Context, networkID string, seed []*state.Peer) ([]*state.Peer, error) {
	c.network = networkID
	c.seed = seed
	return seed, nil
}
