// Package client 实现对外部协作方服务（目录、询价、购物车）的访问层。
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

// ErrMalformedCatalog 表示目录服务返回的载荷不是商品序列。
// 调用方据此将失败归类为LoadFailure：记录日志并保持既有集合不变。
var ErrMalformedCatalog = errors.New("catalog payload is not a product list")

// CatalogClient 定义商品目录协作方的访问接口
type CatalogClient interface {
	// FetchProducts 拉取完整商品目录，保持上游给出的顺序。
	FetchProducts(ctx context.Context) ([]*domain.Product, error)
}

// httpCatalogClient 基于HTTP实现CatalogClient
type httpCatalogClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewCatalogClient 创建目录服务客户端。
func NewCatalogClient(baseURL string, timeout time.Duration, logger *zap.Logger) CatalogClient {
	return &httpCatalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchProducts 拉取完整商品目录。
// 响应体必须是商品对象数组；其它任何形状都视为畸形载荷。
func (c *httpCatalogClient) FetchProducts(ctx context.Context) ([]*domain.Product, error) {
	url := c.baseURL + "/products"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		c.logger.Warn("catalog payload is not a product array", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	// JSON null 也能解码进切片且不报错，此处显式拒绝非数组载荷。
	if products == nil {
		c.logger.Warn("catalog payload is null, not a product array")
		return nil, fmt.Errorf("%w: payload is null", ErrMalformedCatalog)
	}

	return products, nil
}
