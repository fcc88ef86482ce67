package livesession

import (
	"net/http"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	SessionName     string `json:"sessionName" binding:"required"`
	PricePerAccount *int   `json:"pricePerAccount" binding:"required"`
}

// Create 新建一个计价场次
func Create(c *gin.Context) {
	var body createSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	session, err := CreateSession(body.SessionName, *body.PricePerAccount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// List 返回全部场次
func List(c *gin.Context) {
	sessions, err := ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询场次失败"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Active 返回当前生效的场次，没有任何场次时返回null
func Active(c *gin.Context) {
	session, err := ActiveSession(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询当前场次失败"})
		return
	}
	c.JSON(http.StatusOK, session)
}
