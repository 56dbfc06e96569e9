// Package client 提供带缓存的目录客户端实现
package client

import (
	"context"
	"time"

	"github.com/MorseWayne/shop_front/internal/cache"
	"github.com/MorseWayne/shop_front/internal/domain"
)

// catalogCacheKey 目录全量列表的缓存键
const catalogCacheKey = "catalog:products"

// CachedCatalogClient 带缓存的目录客户端装饰器
type CachedCatalogClient struct {
	client CatalogClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedCatalogClient 创建带缓存的目录客户端
func NewCachedCatalogClient(client CatalogClient, cache cache.Cache, ttl time.Duration) CatalogClient {
	return &CachedCatalogClient{
		client: client,
		cache:  cache,
		ttl:    ttl,
	}
}

// FetchProducts 拉取商品目录（带缓存）。
// 缓存未命中或读取失败时穿透到上游，成功后回填缓存。
func (c *CachedCatalogClient) FetchProducts(ctx context.Context) ([]*domain.Product, error) {
	var cached []*domain.Product
	if err := c.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
		return cached, nil
	}

	products, err := c.client.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	// 回填失败不影响本次结果
	_ = c.cache.Set(ctx, catalogCacheKey, products, c.ttl)

	return products, nil
}
