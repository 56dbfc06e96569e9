// Package api 提供询价弹窗相关的HTTP API处理器实现。
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

// EnquiryHandler 询价弹窗相关的HTTP处理器
type EnquiryHandler struct {
	viewService service.ViewService
	logger      *zap.Logger
}

// NewEnquiryHandler 创建询价处理器实例
func NewEnquiryHandler(viewService service.ViewService, logger *zap.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// openEnquiryRequest 打开弹窗请求体
type openEnquiryRequest struct {
	ProductID string `json:"product_id"`
}

// enquiryResult 提交结果：渲染后的视图与面向用户的通知
type enquiryResult struct {
	View         *domain.StorefrontPage `json:"view"`
	Notification *domain.Notification   `json:"notification"`
}

// Open 打开询价弹窗
// POST /api/v1/storefront/enquiry/open
func (h *EnquiryHandler) Open(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	var req openEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}
	if req.ProductID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	page, err := h.viewService.OpenEnquiry(r.Context(), user, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("open enquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "open enquiry failed", reqID, "")
		return
	}

	resp.OK(w, page, reqID, "")
}

// Edit 编辑询价草稿字段
// PUT /api/v1/storefront/enquiry
func (h *EnquiryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	var edit domain.EnquiryFieldEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	page, err := h.viewService.EditEnquiry(r.Context(), user, edit)
	if err != nil {
		if errors.Is(err, service.ErrEnquiryNotOpen) {
			resp.Error(w, http.StatusConflict, resp.CodeInvalidParam, "enquiry modal is not open", reqID, "")
			return
		}

		h.logger.Error("edit enquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "edit enquiry failed", reqID, "")
		return
	}

	resp.OK(w, page, reqID, "")
}

// Submit 提交询价草稿
// POST /api/v1/storefront/enquiry/submit
func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	page, note, err := h.viewService.SubmitEnquiry(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnquiryNotOpen):
			resp.Error(w, http.StatusConflict, resp.CodeInvalidParam, "enquiry modal is not open", reqID, "")
		case errors.Is(err, service.ErrSubmissionSuperseded):
			resp.Error(w, http.StatusConflict, resp.CodeInvalidParam, "submission superseded", reqID, "")
		case isDraftValidationError(err):
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
		default:
			h.logger.Error("submit enquiry failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "submit enquiry failed", reqID, "")
		}
		return
	}

	resp.OK(w, &enquiryResult{View: page, Notification: note}, reqID, "")
}

// Close 关闭询价弹窗
// POST /api/v1/storefront/enquiry/close
func (h *EnquiryHandler) Close(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, resp.CodeUnauthorized, "authentication required", reqID, "")
		return
	}

	page, err := h.viewService.CloseEnquiry(r.Context(), user)
	if err != nil {
		h.logger.Error("close enquiry failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "close enquiry failed", reqID, "")
		return
	}

	resp.OK(w, page, reqID, "")
}

// isDraftValidationError 判断是否为草稿校验类错误
func isDraftValidationError(err error) bool {
	return errors.Is(err, domain.ErrDraftNameRequired) ||
		errors.Is(err, domain.ErrDraftEmailRequired) ||
		errors.Is(err, domain.ErrDraftPhoneRequired) ||
		errors.Is(err, domain.ErrDraftInvalidQuantity) ||
		errors.Is(err, domain.ErrDraftMissingProduct)
}
