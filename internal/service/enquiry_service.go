// Package service 实现询价弹窗的状态机工作流。
package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/client"
	"github.com/MorseWayne/shop_front/internal/domain"
)

// 工作流状态错误
var (
	// ErrEnquiryNotOpen 表示当前状态下不允许编辑或提交表单。
	ErrEnquiryNotOpen = errors.New("enquiry modal is not open")
	// ErrSubmissionSuperseded 表示提交在途期间弹窗被关闭或重开，
	// 在途结果按过期丢弃，不作用于新状态。
	ErrSubmissionSuperseded = errors.New("enquiry submission superseded")
)

// EnquiryWorkflow 管理单个购物者会话的询价弹窗生命周期。
// 状态机：Closed -> Open -> Submitting -> Closed(成功) / Open(失败，草稿保留)。
// Close 在 Open 状态下总是可用，丢弃草稿且不提交。
//
// 每次 Open/Close 递增会话令牌；提交完成时仅当令牌仍与发起时一致才应用结果，
// 避免过期响应改写新弹窗的状态。
type EnquiryWorkflow struct {
	client client.EnquiryClient
	logger *zap.Logger

	mu    sync.Mutex
	state domain.EnquiryState
	draft domain.EnquiryDraft
	token uint64
}

// NewEnquiryWorkflow 创建询价工作流实例，初始状态为Closed。
func NewEnquiryWorkflow(client client.EnquiryClient, logger *zap.Logger) *EnquiryWorkflow {
	return &EnquiryWorkflow{
		client: client,
		logger: logger,
		state:  domain.EnquiryStateClosed,
	}
}

// Open 打开弹窗：捕获目标商品，其余草稿字段清空。
func (w *EnquiryWorkflow) Open(p *domain.Product) domain.EnquiryModal {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = domain.EnquiryStateOpen
	w.draft = domain.NewEnquiryDraft(p.ID, p.Name)
	w.token++
	return w.modalLocked()
}

// Edit 应用一次字段编辑。草稿整体替换，不做原地修改。
func (w *EnquiryWorkflow) Edit(edit domain.EnquiryFieldEdit) (domain.EnquiryModal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != domain.EnquiryStateOpen {
		return w.modalLocked(), ErrEnquiryNotOpen
	}
	w.draft = edit.Apply(w.draft)
	return w.modalLocked(), nil
}

// Close 关闭弹窗并丢弃草稿。从任意状态回到Closed都是幂等的。
func (w *EnquiryWorkflow) Close() domain.EnquiryModal {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = domain.EnquiryStateClosed
	w.draft = domain.EnquiryDraft{}
	w.token++
	return w.modalLocked()
}

// Submit 校验草稿并向询价服务发起单次提交。
// 成功：关闭弹窗、清空草稿，返回携带回执路径的成功通知。
// 失败（拒绝或传输错误）：弹窗保持Open、草稿保留以便重试，返回错误通知。
// 校验不通过时返回错误，状态不变。
func (w *EnquiryWorkflow) Submit(ctx context.Context, user *domain.User) (*domain.Notification, error) {
	w.mu.Lock()
	if w.state != domain.EnquiryStateOpen {
		w.mu.Unlock()
		return nil, ErrEnquiryNotOpen
	}
	if err := w.draft.Validate(); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	w.state = domain.EnquiryStateSubmitting
	token := w.token
	draft := w.draft
	w.mu.Unlock()

	// 在途请求不持锁：提交期间允许Close/重开，结果按令牌判定是否过期
	receipt, err := w.client.Submit(ctx, user.ID, domain.EnquirySubmission{
		ProductID:   draft.ProductID,
		ProductName: draft.ProductName,
		Name:        draft.Name,
		Email:       draft.Email,
		PhoneNumber: draft.PhoneNumber,
		Quantity:    draft.Quantity,
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if token != w.token {
		w.logger.Info("discarding stale enquiry result",
			zap.String("user_id", user.ID),
			zap.String("product_id", draft.ProductID),
		)
		return nil, ErrSubmissionSuperseded
	}

	if err != nil {
		w.state = domain.EnquiryStateOpen
		w.logger.Warn("enquiry submission failed",
			zap.String("user_id", user.ID),
			zap.String("product_id", draft.ProductID),
			zap.Error(err),
		)
		return domain.ErrorNotification("Error submitting enquiry"), nil
	}

	w.state = domain.EnquiryStateClosed
	w.draft = domain.EnquiryDraft{}
	w.token++

	w.logger.Info("enquiry submitted",
		zap.String("user_id", user.ID),
		zap.String("product_id", draft.ProductID),
		zap.String("receipt_id", receipt.ID),
	)
	return domain.SuccessNotification("Query submitted successfully", receipt.QueryPath()), nil
}

// Modal 返回弹窗当前的对外可见状态。
func (w *EnquiryWorkflow) Modal() domain.EnquiryModal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.modalLocked()
}

// modalLocked 生成状态快照，调用方必须已持有锁。
func (w *EnquiryWorkflow) modalLocked() domain.EnquiryModal {
	return domain.EnquiryModal{State: w.state, Draft: w.draft}
}
