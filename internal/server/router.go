package server

import (
	"wallet-client/internal/handler"
	"wallet-client/internal/handler/response"

	"wallet-client/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(node *handler.NodeHandler) *gin.Engine {
	// 0. 初始化监控指标
	monitor.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware()) // 监控埋点

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // 暴露给 Prometheus

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.WriteResponse(c, nil, gin.H{"pong": true})
		})

		api.GET("/status", node.Status)
		api.GET("/delegates", node.Delegates)
		api.GET("/peers", node.Peers)
		api.POST("/peers/update", node.PeersUpdate)
		api.POST("/transactions", node.Broadcast)

		wallets := api.Group("/wallets")
		{
			wallets.GET("/:address", node.Wallet)
			wallets.GET("/:address/votes", node.WalletVote)
			wallets.GET("/:address/transactions", node.Transactions)
		}
	}

	return r
}
