// Package client 实现购物车子系统的访问层
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

// CartClient 定义购物车协作方的访问接口
type CartClient interface {
	// AddItem 向购物者的购物车追加一条加购请求。
	// 调用方按即发即忘处理：结果只用于日志，不回流到用户可见状态。
	AddItem(ctx context.Context, userID string, line domain.CartLineRequest) error
}

// httpCartClient 基于HTTP实现CartClient
type httpCartClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewCartClient 创建购物车子系统客户端。
func NewCartClient(baseURL string, timeout time.Duration, logger *zap.Logger) CartClient {
	return &httpCartClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// AddItem 发送加购请求。响应体不消费，仅检查传输层是否成功。
func (c *httpCartClient) AddItem(ctx context.Context, userID string, line domain.CartLineRequest) error {
	payload, err := json.Marshal(&line)
	if err != nil {
		return fmt.Errorf("marshal cart line: %w", err)
	}

	url := c.baseURL + "/users/" + userID + "/cart/items"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build cart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("cart service returned status %d", res.StatusCode)
	}

	return nil
}
