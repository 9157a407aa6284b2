// Package analyze 提供成分分析相關的 HTTP 處理器
package analyze

import (
	"context"
	"errors"
	"net/http"

	"github.com/freyasheth/foodbuddy/internal/api/middleware"
	"github.com/freyasheth/foodbuddy/internal/core/analysis"
	"github.com/freyasheth/foodbuddy/internal/core/label"
	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request 分析請求
type Request struct {
	Ingredients string `json:"ingredients"`
}

// Handler 分析處理器
type Handler struct {
	service *analysis.Service
}

// NewHandler 創建分析處理器
func NewHandler(service *analysis.Service) *Handler {
	return &Handler{service: service}
}

// HandleAnalyze POST /api/v1/analyze
func (h *Handler) HandleAnalyze(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.Abort(c, common.ErrTooLarge.Wrap(err))
			return
		}
		middleware.Abort(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	ctx := c.Request.Context()
	clientID := c.GetHeader(middleware.ClientIDHeader)

	common.LogDebug("Analyze request",
		zap.String("request_id", requestid.Get(c)),
		zap.String("client_id", clientID),
		zap.String("ingredients", common.Preview(req.Ingredients, 80)),
	)

	result, err := h.service.Submit(ctx, clientID, req.Ingredients)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = common.ErrGatewayTimeout.Wrap(err)
		}
		_ = c.Error(err)
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleCategories GET /api/v1/categories
func (h *Handler) HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": label.Categories()})
}

// HandleExamples GET /api/v1/examples
func (h *Handler) HandleExamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": analysis.Examples()})
}
