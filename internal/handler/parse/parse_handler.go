/**
 * 解析处理器
 * @author: sun977
 * @date: 2026.08.25
 * @description: 处理无线网络扫描输出的解析HTTP请求
 * @func: 接收格式与文本，返回解析出的网络记录列表
 */
package parse

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser"
	"wifiparse/internal/model/base"
	"wifiparse/internal/pkg/logger"
	"wifiparse/internal/pkg/utils"
	parsesvc "wifiparse/internal/service/parse"
)

// ParseRequest 解析请求体
type ParseRequest struct {
	Format string `json:"format" binding:"required"` // 扫描输出格式: airport / profiler
	Text   string `json:"text" binding:"required"`   // 扫描输出原文
}

// ParseHandler 解析处理器接口
type ParseHandler interface {
	// ==================== 解析执行 ====================
	ParseText(c *gin.Context) // 解析扫描输出文本

	// ==================== 格式查询 ====================
	ListFormats(c *gin.Context) // 列出支持的扫描输出格式
}

// parseHandler 解析处理器实现
type parseHandler struct {
	service parsesvc.ParseService
}

// NewParseHandler 创建解析处理器实例
func NewParseHandler(service parsesvc.ParseService) ParseHandler {
	return &parseHandler{
		service: service,
	}
}

// ==================== 解析执行处理器实现 ====================

// ParseText 解析扫描输出文本
// @Summary 解析扫描输出
// @Description 按指定格式解析无线网络扫描输出，返回网络记录列表
// @Tags 解析
// @Accept json
// @Produce json
// @Param request body ParseRequest true "解析请求"
// @Success 200 {object} base.APIResponse "解析成功"
// @Failure 400 {object} base.APIResponse "请求参数错误或格式不支持"
// @Failure 422 {object} base.APIResponse "文本与所选格式不匹配"
// @Router /parse [post]
func (h *parseHandler) ParseText(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, base.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	result, err := h.service.ParseText(model.ParseFormat(req.Format), req.Text, "api")
	if err != nil {
		requestID := c.GetString("request_id")
		logger.LogError(err, requestID, utils.GetClientIP(c), c.Request.URL.Path, c.Request.Method, map[string]interface{}{
			"format": req.Format,
		})

		if isParseError(err) {
			c.JSON(http.StatusUnprocessableEntity, base.APIResponse{
				Code:    http.StatusUnprocessableEntity,
				Status:  "failed",
				Message: "Failed to parse document",
				Error:   err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, base.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Unsupported parse format",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Parse completed",
		Data:    result,
	})
}

// ==================== 格式查询处理器实现 ====================

// ListFormats 列出支持的扫描输出格式
// @Summary 列出支持的格式
// @Description 返回当前注册的所有扫描输出格式
// @Tags 解析
// @Produce json
// @Success 200 {object} base.APIResponse "查询成功"
// @Router /parse/formats [get]
func (h *parseHandler) ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data: gin.H{
			"formats": h.service.Formats(),
		},
	})
}

// isParseError 区分解析失败与未知格式
func isParseError(err error) bool {
	var headerErr *parser.HeaderNotFoundError
	var rowErr *parser.RowTooShortError
	var docErr *parser.MalformedDocumentError
	return errors.As(err, &headerErr) || errors.As(err, &rowErr) || errors.As(err, &docErr)
}
