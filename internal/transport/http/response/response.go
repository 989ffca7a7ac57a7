package response

import "github.com/gin-gonic/gin"

// Msg 错误与提示统一为 {message}
type Msg struct {
	Message string `json:"message"`
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Msg{Message: message})
}

func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Msg{Message: message})
}
