// Package domain 定义购物车桥接相关的领域模型。
package domain

// CartLineRequest 表示发往购物车子系统的加购请求。
// 这是商品在加购瞬间的快照：之后目录中价格/名称的变化不得影响已生成的请求。
// JSON字段名遵循购物车子系统的线上契约。
type CartLineRequest struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	ProductImg string  `json:"productImg"`
}

// NewCartLineRequest 从商品生成固定数量为1的加购快照。
func NewCartLineRequest(p *Product) CartLineRequest {
	return CartLineRequest{
		ProductID:  p.ID,
		Name:       p.Name,
		Quantity:   1,
		Price:      p.Price,
		ProductImg: p.ProductImg,
	}
}
