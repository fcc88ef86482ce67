package revenue

import (
	"net/http"
	"strconv"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// List 按创建时间倒序分页返回收益台账
func List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	var total int64
	if err := database.DB.Model(&RevenueRecord{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计收益记录失败"})
		return
	}

	var records []RevenueRecord
	if err := database.DB.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询收益记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"records":  records,
	})
}

// sessionSummary 是按场次汇总的收益行
type sessionSummary struct {
	SessionID *uint `json:"sessionId"`
	Count     int64 `json:"count"`
	Revenue   int64 `json:"revenue"`
}

// Summary 返回总收益和按场次分组的汇总
func Summary(c *gin.Context) {
	var rows []sessionSummary
	err := database.DB.Model(&RevenueRecord{}).
		Select("session_id, COUNT(*) AS count, SUM(revenue) AS revenue").
		Group("session_id").
		Order("session_id desc").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "汇总收益失败"})
		return
	}

	var totalCount, totalRevenue int64
	for _, row := range rows {
		totalCount += row.Count
		totalRevenue += row.Revenue
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCount":   totalCount,
		"totalRevenue": totalRevenue,
		"sessions":     rows,
	})
}
