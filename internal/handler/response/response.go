package response

import (
	"net/http"

	"wallet-client/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Response 定义统一的 API 响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// WriteResponse 用于返回统一格式的响应
func WriteResponse(c *gin.Context, err error, data interface{}) {
	code, message := errno.Decode(err)
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}
