// Package api 提供店面视图相关的HTTP API处理器实现。
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

// StorefrontHandler 店面视图相关的HTTP处理器
type StorefrontHandler struct {
	viewService service.ViewService
	logger      *zap.Logger
}

// NewStorefrontHandler 创建店面处理器实例
func NewStorefrontHandler(viewService service.ViewService, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// Activate 激活店面视图，拉取最新目录
// POST /api/v1/storefront/activate
func (h *StorefrontHandler) Activate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	// 目录拉取失败不阻断渲染，沿用既有集合
	if err := h.viewService.Activate(r.Context()); err != nil {
		h.logger.Warn("storefront activation with stale catalog",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
	}

	page, err := h.viewService.Render(r.Context(), user, domain.FilterCriteria{Category: domain.CategoryAll})
	if err != nil {
		h.logger.Error("render failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "render failed", reqID, "")
		return
	}

	resp.OK(w, page, reqID, "")
}

// Render 按筛选条件渲染店面视图
// GET /api/v1/storefront?category={category}&type={type}
func (h *StorefrontHandler) Render(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	filter := domain.FilterCriteria{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
	}

	page, err := h.viewService.Render(r.Context(), user, filter)
	if err != nil {
		h.logger.Error("render failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "render failed", reqID, "")
		return
	}

	resp.OK(w, page, reqID, "")
}

// changePageRequest 页码切换请求体
type changePageRequest struct {
	Page int `json:"page"`
}

// pageChangeResult 页码切换结果。目标页越界时changed为false，view带回当前页。
type pageChangeResult struct {
	Changed bool                   `json:"changed"`
	View    *domain.StorefrontPage `json:"view"`
}

// ChangePage 切换到指定页码
// POST /api/v1/storefront/page
func (h *StorefrontHandler) ChangePage(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	var req changePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	page, err := h.viewService.ChangePage(r.Context(), user, req.Page)
	if err != nil {
		// 越界页码是空操作而非错误，客户端据changed标志保留当前视图
		if errors.Is(err, service.ErrPageOutOfRange) {
			resp.OK(w, pageChangeResult{Changed: false, View: page}, reqID, "")
			return
		}

		h.logger.Error("change page failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "change page failed", reqID, "")
		return
	}

	resp.OK(w, pageChangeResult{Changed: true, View: page}, reqID, "")
}
