package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"wallet-client/internal/client"
	"wallet-client/internal/txbuilder"
	"wallet-client/pkg/address"
)

// 由固定口令派生的主网地址, 保证能通过 base58check 校验
var testAddr = address.FromPublicKey(
	txbuilder.KeyFromPassphrase("this is a top secret passphrase").PubKey(),
	address.MainnetVersion,
)

func newTestRouter(t *testing.T, node http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	cli := client.New(client.NewConnection(srv.URL, 2), nil, nil)
	h := NewNodeHandler(cli, nil, nil)

	r := gin.New()
	r.GET("/api/v1/wallets/:address", h.Wallet)
	r.POST("/api/v1/transactions", h.Broadcast)
	r.GET("/health", HealthCheck)
	return r
}

func TestWalletEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/wallets/"+testAddr, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"address": "` + testAddr + `", "balance": 100, "isDelegate": true}}`))
	})
	r := newTestRouter(t, mux)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+testAddr, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":0`)
	assert.Contains(t, w.Body.String(), `"balance":100`)
}

func TestWalletEndpointNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/wallets/"+testAddr, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null}`))
	})
	r := newTestRouter(t, mux)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+testAddr, nil)
	r.ServeHTTP(w, req)

	// 业务错误也走 200 + 信封 code
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":20201`)
}

func TestWalletEndpointInvalidAddress(t *testing.T) {
	r := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/not-an-address", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":20202`)
}

func TestBroadcastRejectsUnsigned(t *testing.T) {
	r := newTestRouter(t, http.NewServeMux())

	body := `{"transactions": [{"type": 0, "amount": 1, "fee": 1}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":20402`)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)
}
