package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

// 视图编排错误
var (
	// ErrProductNotFound 表示目标商品不在当前目录集合中。
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrPageOutOfRange 表示页码切换请求超出有效范围，按无操作拒绝。
	ErrPageOutOfRange = errors.New("page out of range")
)

// ViewConfig 视图层配置
type ViewConfig struct {
	PageSize int // 每页商品数量
	// ResetPageOnFilterChange 为true时，筛选条件变化会把页码重置回第1页；
	// 默认false，保持当前页码，依赖窗口裁剪表达空页。
	ResetPageOnFilterChange bool
}

// ViewService 编排店面列表页的完整视图状态：
// 目录集合、筛选投影、分页窗口、询价弹窗与加购转发。
// 每个购物者持有独立的视图会话，互不干扰。
type ViewService interface {
	// Activate 激活店面：单次拉取目录并整体替换集合。
	// 失败时保持既有集合，视图依旧可渲染。
	Activate(ctx context.Context) error

	// Render 应用调用方给定的筛选条件并渲染当前视图。
	Render(ctx context.Context, user *domain.User, filter domain.FilterCriteria) (*domain.StorefrontPage, error)

	// ChangePage 切换到指定页码。越界请求按无操作拒绝，返回ErrPageOutOfRange。
	ChangePage(ctx context.Context, user *domain.User, page int) (*domain.StorefrontPage, error)

	// OpenEnquiry 针对目录中的商品打开询价弹窗，草稿重新初始化。
	OpenEnquiry(ctx context.Context, user *domain.User, productID string) (*domain.StorefrontPage, error)

	// EditEnquiry 对打开状态的询价草稿应用一次字段编辑。
	EditEnquiry(ctx context.Context, user *domain.User, edit domain.EnquiryFieldEdit) (*domain.StorefrontPage, error)

	// SubmitEnquiry 校验并提交询价草稿，返回渲染结果与面向用户的通知。
	SubmitEnquiry(ctx context.Context, user *domain.User) (*domain.StorefrontPage, *domain.Notification, error)

	// CloseEnquiry 关闭询价弹窗并丢弃草稿，重复关闭为幂等。
	CloseEnquiry(ctx context.Context, user *domain.User) (*domain.StorefrontPage, error)

	// AddToCart 把商品以数量1转发给购物车子系统，返回渲染结果与成功通知。
	AddToCart(ctx context.Context, user *domain.User, productID string) (*domain.StorefrontPage, *domain.Notification, error)
}

// viewSession 表示单个购物者的视图会话
type viewSession struct {
	mu      sync.Mutex
	filter  domain.FilterCriteria
	page    int
	enquiry *EnquiryWorkflow
}

// viewService 实现ViewService接口
type viewService struct {
	catalog CatalogStore
	cart    *CartBridge
	logger  *zap.Logger
	cfg     ViewConfig

	newEnquiry func() *EnquiryWorkflow

	mu       sync.Mutex
	sessions map[string]*viewSession
}

// NewViewService 创建视图编排服务实例
func NewViewService(catalog CatalogStore, newEnquiry func() *EnquiryWorkflow, cart *CartBridge, cfg ViewConfig, logger *zap.Logger) ViewService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	return &viewService{
		catalog:    catalog,
		cart:       cart,
		logger:     logger,
		cfg:        cfg,
		newEnquiry: newEnquiry,
		sessions:   make(map[string]*viewSession),
	}
}

// session 返回购物者的视图会话，不存在时初始化：
// 第1页、不限定分类、弹窗关闭。
func (s *viewService) session(userID string) *viewSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &viewSession{
			filter:  domain.FilterCriteria{Category: domain.CategoryAll},
			page:    1,
			enquiry: s.newEnquiry(),
		}
		s.sessions[userID] = sess
	}
	return sess
}

// Activate 激活店面并拉取目录。
func (s *viewService) Activate(ctx context.Context) error {
	return s.catalog.Load(ctx)
}

// Render 应用筛选条件并渲染视图。
func (s *viewService) Render(ctx context.Context, user *domain.User, filter domain.FilterCriteria) (*domain.StorefrontPage, error) {
	if filter.Category == "" {
		filter.Category = domain.CategoryAll
	}

	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if filter != sess.filter {
		sess.filter = filter
		if s.cfg.ResetPageOnFilterChange {
			sess.page = 1
		}
	}
	return s.renderLocked(sess), nil
}

// ChangePage 切换页码。有效范围以当前筛选后的集合计算。
func (s *viewService) ChangePage(ctx context.Context, user *domain.User, page int) (*domain.StorefrontPage, error) {
	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	total := len(FilterProducts(s.catalog.Products(), sess.filter))
	if !ValidPage(page, total, s.cfg.PageSize) {
		return s.renderLocked(sess), ErrPageOutOfRange
	}
	sess.page = page
	return s.renderLocked(sess), nil
}

// OpenEnquiry 打开询价弹窗。
func (s *viewService) OpenEnquiry(ctx context.Context, user *domain.User, productID string) (*domain.StorefrontPage, error) {
	p := s.catalog.Product(productID)
	if p == nil {
		return nil, ErrProductNotFound
	}

	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.enquiry.Open(p)
	return s.renderLocked(sess), nil
}

// EditEnquiry 编辑询价草稿。
func (s *viewService) EditEnquiry(ctx context.Context, user *domain.User, edit domain.EnquiryFieldEdit) (*domain.StorefrontPage, error) {
	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.enquiry.Edit(edit); err != nil {
		return nil, err
	}
	return s.renderLocked(sess), nil
}

// SubmitEnquiry 提交询价草稿。
func (s *viewService) SubmitEnquiry(ctx context.Context, user *domain.User) (*domain.StorefrontPage, *domain.Notification, error) {
	sess := s.session(user.ID)

	// 提交在途期间不持会话锁，避免阻塞同一购物者的其他视图操作
	note, err := sess.enquiry.Submit(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.renderLocked(sess), note, nil
}

// CloseEnquiry 关闭询价弹窗。
func (s *viewService) CloseEnquiry(ctx context.Context, user *domain.User) (*domain.StorefrontPage, error) {
	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.enquiry.Close()
	return s.renderLocked(sess), nil
}

// AddToCart 转发加购请求。
func (s *viewService) AddToCart(ctx context.Context, user *domain.User, productID string) (*domain.StorefrontPage, *domain.Notification, error) {
	p := s.catalog.Product(productID)
	if p == nil {
		return nil, nil, ErrProductNotFound
	}

	note := s.cart.AddToCart(ctx, user, p)

	sess := s.session(user.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.renderLocked(sess), note, nil
}

// renderLocked 基于会话当前状态计算完整视图，调用方必须已持有会话锁。
// 渲染管线：目录集合 -> 筛选投影 -> 分页窗口 -> 卡片生成。
func (s *viewService) renderLocked(sess *viewSession) *domain.StorefrontPage {
	filtered := FilterProducts(s.catalog.Products(), sess.filter)
	total := len(filtered)
	window := PageWindow(filtered, sess.page, s.cfg.PageSize)

	cards := make([]*domain.ProductCard, 0, len(window))
	for _, p := range window {
		cards = append(cards, domain.NewProductCard(p))
	}

	modal := sess.enquiry.Modal()
	return &domain.StorefrontPage{
		Products:  cards,
		Total:     total,
		Page:      sess.page,
		PageSize:  s.cfg.PageSize,
		CanGoPrev: CanGoPrev(sess.page),
		CanGoNext: CanGoNext(sess.page, s.cfg.PageSize, total),
		Filter:    sess.filter,
		Enquiry:   &modal,
	}
}
