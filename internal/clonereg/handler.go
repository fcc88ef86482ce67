package clonereg

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type registryRequest struct {
	Username     string   `json:"username" binding:"required,max=160"`
	Password     string   `json:"password" binding:"required,max=160"`
	ChampionList []string `json:"championList"`
	SkinList     []string `json:"skinList"`
}

// List 分页返回登记表
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
	if err := database.DB.Model(&CloneReg{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计登记表失败"})
		return
	}

	var rows []CloneReg
	if err := database.DB.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询登记表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"records":  rows,
	})
}

// Create 新增一条登记记录
func Create(c *gin.Context) {
	var body registryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	row := CloneReg{
		Username:     strings.TrimSpace(body.Username),
		Password:     body.Password,
		ChampionList: datatypes.NewJSONSlice(body.ChampionList),
		SkinList:     datatypes.NewJSONSlice(body.SkinList),
	}
	if err := database.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户名已存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入登记表失败"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Update 更新一条登记记录
func Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的id"})
		return
	}

	var body registryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	var row CloneReg
	if err := database.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询登记表失败"})
		return
	}

	row.Username = strings.TrimSpace(body.Username)
	row.Password = body.Password
	row.ChampionList = datatypes.NewJSONSlice(body.ChampionList)
	row.SkinList = datatypes.NewJSONSlice(body.SkinList)

	if err := database.DB.Save(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户名已存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新登记表失败"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 删除一条登记记录
func Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的id"})
		return
	}

	res := database.DB.Delete(&CloneReg{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除登记记录失败"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}
