package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/client"
	"github.com/MorseWayne/shop_front/internal/domain"
)

// CartBridge 把列表页的加购动作转发给购物车服务。
// 转发失败只记录日志，不向购物者暴露失败：通知总是成功口径，
// 购物车为最终权威，下次渲染以其状态为准。
type CartBridge struct {
	client client.CartClient
	logger *zap.Logger
}

// NewCartBridge 创建购物车桥接实例。
func NewCartBridge(client client.CartClient, logger *zap.Logger) *CartBridge {
	return &CartBridge{client: client, logger: logger}
}

// AddToCart 以数量1转发一条快照行，并返回面向购物者的成功通知。
func (b *CartBridge) AddToCart(ctx context.Context, user *domain.User, p *domain.Product) *domain.Notification {
	line := domain.NewCartLineRequest(p)
	if err := b.client.AddItem(ctx, user.ID, line); err != nil {
		b.logger.Warn("cart add-item forward failed",
			zap.String("user_id", user.ID),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
	return domain.SuccessNotification(p.Name+" added to the cart.", "")
}
