// Package service 实现店面视图的业务逻辑层，协调目录、询价与购物车协作方。
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/client"
	"github.com/MorseWayne/shop_front/internal/domain"
)

// CatalogStore 定义目录集合的持有者接口
type CatalogStore interface {
	// Load 拉取完整目录并整体替换持有的集合。单次尝试，不重试。
	// 载荷畸形或传输失败时保持既有集合不变并返回错误，调用方只记录日志。
	Load(ctx context.Context) error

	// Products 返回当前持有的商品集合（保持上游顺序，调用方不得修改）。
	Products() []*domain.Product

	// Product 按标识查找商品，未找到时返回nil。
	Product(id string) *domain.Product
}

// catalogStore 实现CatalogStore接口
type catalogStore struct {
	client client.CatalogClient
	logger *zap.Logger

	mu       sync.RWMutex
	products []*domain.Product
	byID     map[string]*domain.Product
}

// NewCatalogStore 创建目录存储实例
func NewCatalogStore(client client.CatalogClient, logger *zap.Logger) CatalogStore {
	return &catalogStore{
		client: client,
		logger: logger,
		byID:   make(map[string]*domain.Product),
	}
}

// Load 拉取目录并替换集合。
// 失败被归类为LoadFailure：记录日志、保持集合不变，不向用户侧抛出告警。
func (s *catalogStore) Load(ctx context.Context) error {
	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("catalog load failed, keeping current collection", zap.Error(err))
		return err
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.mu.Unlock()

	s.logger.Info("catalog loaded", zap.Int("count", len(products)))
	return nil
}

// Products 返回当前持有的商品集合。
func (s *catalogStore) Products() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Product 按标识查找商品。
func (s *catalogStore) Product(id string) *domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}
