// Package domain 定义店面视图渲染与通知相关的模型。
package domain

import "unicode/utf8"

// DefaultPageSize 每页固定展示的商品数量。
const DefaultPageSize = 20

// descriptionPreviewLimit 商品卡片上描述文本的截断长度。
const descriptionPreviewLimit = 100

// PageState 表示分页状态。页码从1开始。
type PageState struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NotificationLevel 表示通知级别
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification 表示一条面向用户的离散通知事件。
// Path 可选，携带可跳转的引用路径；具体展示方式由外部协作方决定。
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Path    string            `json:"path,omitempty"`
}

// SuccessNotification 构造成功通知。
func SuccessNotification(message, path string) *Notification {
	return &Notification{Level: NotificationSuccess, Message: message, Path: path}
}

// ErrorNotification 构造错误通知。
func ErrorNotification(message string) *Notification {
	return &Notification{Level: NotificationError, Message: message}
}

// ProductCard 表示渲染给用户的单张商品卡片。
type ProductCard struct {
	*Product
	DescriptionPreview string `json:"description_preview"`
	DetailPath         string `json:"detail_path"`
}

// NewProductCard 从商品生成卡片，描述超长时按前100个字符截断。
func NewProductCard(p *Product) *ProductCard {
	return &ProductCard{
		Product:            p,
		DescriptionPreview: previewDescription(p.Description),
		DetailPath:         p.DetailPath(),
	}
}

// previewDescription 截断描述文本并追加省略号。
func previewDescription(s string) string {
	if utf8.RuneCountInString(s) <= descriptionPreviewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:descriptionPreviewLimit]) + "..."
}

// StorefrontPage 表示一次渲染得到的完整视图状态。
type StorefrontPage struct {
	Products  []*ProductCard `json:"products"`  // 当前页可见商品
	Total     int            `json:"total"`     // 筛选后的商品总数
	Page      int            `json:"page"`      // 当前页码
	PageSize  int            `json:"page_size"` // 每页大小
	CanGoPrev bool           `json:"can_go_prev"`
	CanGoNext bool           `json:"can_go_next"`
	Filter    FilterCriteria `json:"filter"`
	Enquiry   *EnquiryModal  `json:"enquiry,omitempty"`
}

// EnquiryModal 表示询价弹窗的对外可见状态。
type EnquiryModal struct {
	State EnquiryState `json:"state"`
	Draft EnquiryDraft `json:"draft"`
}
