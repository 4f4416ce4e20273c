package handler

import (
	"strconv"
	"time"

	"wallet-client/internal/client"
	"wallet-client/internal/handler/response"
	"wallet-client/internal/peers"
	"wallet-client/internal/txbuilder"
	"wallet-client/pkg/address"
	"wallet-client/pkg/cache"
	"wallet-client/pkg/errno"
	"wallet-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const delegatesCacheKey = "delegates:page"

// NodeHandler 把节点客户端的查询/命令能力暴露成 HTTP API
type NodeHandler struct {
	cli     *client.Client
	manager *peers.Manager
	cache   cache.Cache
}

func NewNodeHandler(cli *client.Client, manager *peers.Manager, c cache.Cache) *NodeHandler {
	return &NodeHandler{cli: cli, manager: manager, cache: c}
}

// Status 查询当前绑定节点的状态
func (h *NodeHandler) Status(c *gin.Context) {
	status, err := h.cli.FetchPeerStatus(c.Request.Context())
	if err != nil {
		logger.Warn("查询节点状态失败", zap.Error(err))
		response.WriteResponse(c, errno.ErrNodeUnreachable, nil)
		return
	}
	response.WriteResponse(c, nil, status)
}

// Wallet 查询钱包
func (h *NodeHandler) Wallet(c *gin.Context) {
	addr := c.Param("address")
	if err := address.Validate(addr, address.MainnetVersion); err != nil {
		response.WriteResponse(c, errno.ErrInvalidAddress, nil)
		return
	}
	w, err := h.cli.FetchWallet(c.Request.Context(), addr)
	if err != nil {
		response.WriteResponse(c, errno.ErrNodeUnreachable, nil)
		return
	}
	if w == nil {
		response.WriteResponse(c, errno.ErrWalletNotFound, nil)
		return
	}
	response.WriteResponse(c, nil, w)
}

// WalletVote 查询钱包当前投票
func (h *NodeHandler) WalletVote(c *gin.Context) {
	vote, err := h.cli.FetchWalletVote(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.WriteResponse(c, errno.ErrNodeUnreachable, nil)
		return
	}
	response.WriteResponse(c, nil, vote)
}

// Transactions 查询钱包交易历史
func (h *NodeHandler) Transactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	opts := client.TransactionOptions{
		Page:    page,
		Limit:   limit,
		OrderBy: c.Query("orderBy"),
	}
	txs, err := h.cli.FetchTransactions(c.Request.Context(), c.Param("address"), opts)
	if err != nil {
		response.WriteResponse(c, errno.ErrNodeUnreachable, nil)
		return
	}
	response.WriteResponse(c, nil, txs)
}

// Delegates 查询受托人列表 (短 TTL 缓存, 列表在一个出块周期内基本不变)
func (h *NodeHandler) Delegates(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached client.DelegatePage
		if err := h.cache.Get(ctx, delegatesCacheKey, &cached); err == nil {
			response.WriteResponse(c, nil, &cached)
			return
		}
	}

	page, err := h.cli.FetchDelegates(ctx)
	if err != nil {
		response.WriteResponse(c, errno.ErrNodeUnreachable, nil)
		return
	}
	// 软失败的空页不进缓存
	if h.cache != nil && !page.SoftFailed {
		if err := h.cache.Set(ctx, delegatesCacheKey, page, 30*time.Second); err != nil {
			logger.Warn("受托人列表写缓存失败", zap.Error(err))
		}
	}
	response.WriteResponse(c, nil, page)
}

// Peers 返回当前节点池
func (h *NodeHandler) Peers(c *gin.Context) {
	list, err := h.cli.FetchPeers(c.Request.Context(), c.Query("network"), nil)
	if err != nil {
		response.WriteResponse(c, errno.ErrNoPeerAvailable, nil)
		return
	}
	response.WriteResponse(c, nil, list)
}

// BroadcastRequest 广播请求体, 交易必须已签名
type BroadcastRequest struct {
	Transactions []*txbuilder.SignedTransaction `json:"transactions" binding:"required"`
}

// Broadcast 广播已签名交易
func (h *NodeHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errno.ErrBind, nil)
		return
	}
	for _, tx := range req.Transactions {
		if tx.Signature == "" {
			response.WriteResponse(c, errno.ErrUnsignedTx, nil)
			return
		}
	}

	raw, err := h.cli.BroadcastTransactions(c.Request.Context(), req.Transactions...)
	if err != nil {
		logger.Warn("交易广播失败", zap.Error(err))
		response.WriteResponse(c, errno.ErrBroadcastFailed, nil)
		return
	}
	response.WriteResponse(c, nil, raw)
}

// PeersUpdate 手动触发一次选优重连
func (h *NodeHandler) PeersUpdate(c *gin.Context) {
	peer, err := h.manager.ConnectToBest(c.Request.Context(), peers.ConnectOptions{
		Network: c.Query("network"),
	})
	if err != nil {
		response.WriteResponse(c, errno.ErrNoPeerAvailable, nil)
		return
	}
	response.WriteResponse(c, nil, peer)
}
