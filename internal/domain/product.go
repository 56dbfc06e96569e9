// Package domain 定义店面视图相关的业务领域模型和核心业务规则。
package domain

// ProductInventory 表示目录服务给出的库存快照。
// quantity 与 inStock 由上游各自提供，本服务不做两者的一致性校正。
type ProductInventory struct {
	Quantity int  `json:"quantity"`
	InStock  bool `json:"inStock"`
}

// Product 表示目录中的商品，对本服务只读。
// JSON字段名遵循目录服务的线上契约。
type Product struct {
	ID           string           `json:"_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        float64          `json:"price"`
	Category     string           `json:"category"`
	Type         string           `json:"type"`
	Manufacturer string           `json:"manufacturer"`
	ProductImg   string           `json:"productImg"`
	Inventory    ProductInventory `json:"inventory"`
}

// DetailPath 返回商品详情页的跳转路径。
func (p *Product) DetailPath() string {
	return "/user/product/" + p.ID
}

// CategoryAll 是分类筛选的哨兵值，表示不限定分类。
const CategoryAll = "All"

// FilterCriteria 表示调用方给定的筛选条件。
// Category 为 CategoryAll 时表示不限定分类；Type 为空表示不按型号过滤。
// 筛选条件由外部调用方持有，本服务不存储。
type FilterCriteria struct {
	Category string `json:"category"`
	Type     string `json:"type"`
}

// Matches 按选择规则判断商品是否保留：
// | 分类        | 型号  | 保留条件                          |
// | All         | 空    | 总是保留                          |
// | All         | 非空  | product.Type == Type              |
// | 指定        | 空    | product.Category == Category      |
// | 指定        | 非空  | 分类与型号同时匹配                |
func (c FilterCriteria) Matches(p *Product) bool {
	switch {
	case c.Category == CategoryAll && c.Type == "":
		return true
	case c.Category == CategoryAll:
		return p.Type == c.Type
	case c.Type == "":
		return p.Category == c.Category
	default:
		return p.Category == c.Category && p.Type == c.Type
	}
}
