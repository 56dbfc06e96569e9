// Package api 提供购物车桥接相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
	"github.com/MorseWayne/shop_front/internal/middleware"
	"github.com/MorseWayne/shop_front/internal/resp"
	"github.com/MorseWayne/shop_front/internal/service"
)

// CartHandler 购物车桥接相关的HTTP处理器
type CartHandler struct {
	viewService service.ViewService
	logger      *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(viewService service.ViewService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// addToCartRequest 加购请求体
type addToCartRequest struct {
	ProductID string `json:"product_id"`
}

// cartResult 加购结果：渲染后的视图与面向用户的通知
type cartResult struct {
	View         *domain.StorefrontPage `json:"view"`
	Notification *domain.Notification   `json:"notification"`
}

// AddToCart 把商品以数量1加入购物车
// POST /api/v1/storefront/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}
	if req.ProductID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	page, note, err := h.viewService.AddToCart(r.Context(), user, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("add to cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add to cart failed", reqID, "")
		return
	}

	resp.OK(w, &cartResult{View: page, Notification: note}, reqID, "")
}
