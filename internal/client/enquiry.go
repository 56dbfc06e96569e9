// Package client 实现询价服务的访问层
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

// ErrEnquiryRejected 表示询价服务明确拒绝了本次提交（success标记缺失或为false）。
var ErrEnquiryRejected = errors.New("enquiry submission rejected")

// EnquiryClient 定义询价协作方的访问接口
type EnquiryClient interface {
	// Submit 以提交人身份发起一次询价，成功时返回服务端分配的回执。
	Submit(ctx context.Context, submitterID string, sub domain.EnquirySubmission) (*domain.EnquiryReceipt, error)
}

// httpEnquiryClient 基于HTTP实现EnquiryClient
type httpEnquiryClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewEnquiryClient 创建询价服务客户端。
func NewEnquiryClient(baseURL string, timeout time.Duration, logger *zap.Logger) EnquiryClient {
	return &httpEnquiryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// enquiryResponse 询价服务的响应包络
type enquiryResponse struct {
	Success bool                  `json:"success"`
	Data    domain.EnquiryReceipt `json:"data"`
}

// Submit 提交询价。单次尝试，不做重试。
func (c *httpEnquiryClient) Submit(ctx context.Context, submitterID string, sub domain.EnquirySubmission) (*domain.EnquiryReceipt, error) {
	payload, err := json.Marshal(&sub)
	if err != nil {
		return nil, fmt.Errorf("marshal enquiry submission: %w", err)
	}

	url := c.baseURL + "/users/" + submitterID + "/queries"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build enquiry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit enquiry: %w", err)
	}
	defer res.Body.Close()

	var body enquiryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode enquiry response: %w", err)
	}

	if !body.Success {
		c.logger.Warn("enquiry rejected by upstream",
			zap.String("submitter_id", submitterID),
			zap.String("product_id", sub.ProductID),
			zap.Int("status", res.StatusCode),
		)
		return nil, ErrEnquiryRejected
	}

	return &body.Data, nil
}
