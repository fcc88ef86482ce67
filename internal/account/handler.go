package account

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Handler 把账号服务暴露为HTTP接口。
// 同一套处理器注册两次，分别服务主池和存档池。
type Handler struct {
	svc      *Service
	importer *Importer
	pool     Pool
}

// NewHandler 创建绑定到指定池的处理器。
func NewHandler(svc *Service, importer *Importer, pool Pool) *Handler {
	return &Handler{svc: svc, importer: importer, pool: pool}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
	case errors.Is(err, ErrMalformedContainer):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMalformedContainer.Error()})
	case errors.Is(err, ErrImportTooLarge), errors.Is(err, ErrTooManyRecords):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}

// List 分页返回池内记录
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	records, total, err := h.svc.List(h.pool, page, pageSize)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"records":  records,
	})
}

// GetStats 返回池的即时统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(h.pool)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type importTextRequest struct {
	Content string `json:"content" binding:"required"`
}

// ImportText 导入多行文本
func (h *Handler) ImportText(c *gin.Context) {
	var body importTextRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	report, err := h.importer.ImportText(h.pool, body.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ImportFile 导入上传文件中的账号数组
func (h *Handler) ImportFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上传文件"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取上传文件"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取上传文件"})
		return
	}

	report, err := h.importer.ImportFile(h.pool, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type importListRequest struct {
	Records []Candidate `json:"records" binding:"required"`
	Source  string      `json:"source"`
}

// ImportList 导入一批已结构化的记录
func (h *Handler) ImportList(c *gin.Context) {
	var body importListRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	report, err := h.importer.ImportList(h.pool, body.Records, body.Source)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type statusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

type batchStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status *bool  `json:"status" binding:"required"`
}

// UpdateStatus 更新单条记录的状态
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的id"})
		return
	}

	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := h.svc.UpdateStatusByID(h.pool, uint(id), *body.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatusBatch 批量更新选中记录的状态
func (h *Handler) UpdateStatusBatch(c *gin.Context) {
	var body batchStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := h.svc.UpdateStatusByIDs(h.pool, body.IDs, *body.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatusAll 把整个池更新为给定状态
func (h *Handler) UpdateStatusAll(c *gin.Context) {
	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := h.svc.UpdateStatusAll(h.pool, *body.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type tagRequest struct {
	Tag string `json:"tag"`
}

// UpdateTag 更新单条记录的标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的id"})
		return
	}

	var body tagRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	if err := h.svc.UpdateTag(h.pool, uint(id), body.Tag); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "标签已更新"})
}

// Delete 删除单条记录
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的id"})
		return
	}

	if err := h.svc.DeleteByID(h.pool, uint(id)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

type batchDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// DeleteBatch 批量删除选中记录
func (h *Handler) DeleteBatch(c *gin.Context) {
	var body batchDeleteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	deleted, err := h.svc.DeleteByIDs(h.pool, body.IDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Export 按 format 参数导出池内全部记录，txt（默认）或 xlsx
func (h *Handler) Export(c *gin.Context) {
	records, err := h.svc.ExportRecords(h.pool)
	if err != nil {
		h.fail(c, err)
		return
	}

	stamp := time.Now().Format("20060102")
	if c.DefaultQuery("format", "txt") == "xlsx" {
		h.exportXLSX(c, records, stamp)
		return
	}

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("%s|%s|lv%d\n", rec.Username, rec.Password, rec.Level))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.txt\"", h.pool, stamp))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))
}

func (h *Handler) exportXLSX(c *gin.Context, records []Record, stamp string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"用户名", "密码", "等级", "状态", "标签", "更新时间"}
	_ = f.SetSheetRow(sheet, "A1", &header)

	for i, rec := range records {
		status := "停用"
		if rec.Status {
			status = "可用"
		}
		row := []interface{}{
			rec.Username,
			rec.Password,
			rec.Level,
			status,
			rec.Tag,
			rec.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", h.pool, stamp))
	if err := f.Write(c.Writer); err != nil {
		fmt.Printf("导出XLSX失败: %v\n", err)
	}
}
