package handler

import (
	"wallet-client/internal/handler/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck 返回服务自身的存活状态 (不代表链节点可达)
func HealthCheck(c *gin.Context) {
	response.WriteResponse(c, nil, gin.H{
		"status":  "UP",
		"version": "1.0.0",
		"service": "wallet-client",
	})
}
