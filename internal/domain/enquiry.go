// Package domain 定义商品询价相关的领域模型。
package domain

import "errors"

// 询价表单校验错误
var (
	ErrDraftNameRequired    = errors.New("name is required")
	ErrDraftEmailRequired   = errors.New("email is required")
	ErrDraftPhoneRequired   = errors.New("phone number is required")
	ErrDraftInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrDraftMissingProduct  = errors.New("enquiry target product missing")
)

// EnquiryState 表示询价弹窗的状态机状态
type EnquiryState string

const (
	EnquiryStateClosed     EnquiryState = "closed"     // 初始/终止状态
	EnquiryStateOpen       EnquiryState = "open"       // 弹窗打开，表单可编辑
	EnquiryStateSubmitting EnquiryState = "submitting" // 提交请求在途
)

// EnquiryDraft 表示进行中的询价表单。
// 值类型：每次字段编辑整体替换，不允许外部别名持有后原地修改。
type EnquiryDraft struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Quantity    int    `json:"quantity"`
}

// NewEnquiryDraft 在打开弹窗时创建草稿：捕获目标商品，其余字段清空。
func NewEnquiryDraft(productID, productName string) EnquiryDraft {
	return EnquiryDraft{ProductID: productID, ProductName: productName}
}

// Validate 校验提交前的必填约束。
// 邮箱/电话只要求非空字符串，不做更深的格式校验。
func (d EnquiryDraft) Validate() error {
	if d.ProductID == "" {
		return ErrDraftMissingProduct
	}
	if d.Name == "" {
		return ErrDraftNameRequired
	}
	if d.Email == "" {
		return ErrDraftEmailRequired
	}
	if d.PhoneNumber == "" {
		return ErrDraftPhoneRequired
	}
	if d.Quantity <= 0 {
		return ErrDraftInvalidQuantity
	}
	return nil
}

// EnquiryFieldEdit 表示一次表单字段编辑，未出现的字段保持原值。
type EnquiryFieldEdit struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Quantity    *int    `json:"quantity"`
}

// Apply 基于当前草稿生成应用编辑后的新草稿（整体替换，不修改原值）。
func (e EnquiryFieldEdit) Apply(d EnquiryDraft) EnquiryDraft {
	next := d
	if e.Name != nil {
		next.Name = *e.Name
	}
	if e.Email != nil {
		next.Email = *e.Email
	}
	if e.PhoneNumber != nil {
		next.PhoneNumber = *e.PhoneNumber
	}
	if e.Quantity != nil {
		next.Quantity = *e.Quantity
	}
	return next
}

// EnquirySubmission 表示发往询价服务的提交载荷。
// JSON字段名遵循询价服务的线上契约。
type EnquirySubmission struct {
	ProductID   string `json:"id"`
	ProductName string `json:"product"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Quantity    int    `json:"quantity"`
}

// EnquiryReceipt 表示询价服务返回的回执，本服务只读取其标识。
type EnquiryReceipt struct {
	ID string `json:"_id"`
}

// QueryPath 返回回执对应的跟进查询路径。
func (r EnquiryReceipt) QueryPath() string {
	return "/user/query/" + r.ID
}
