// Package service 实现目录筛选投影。
package service

import (
	"github.com/MorseWayne/shop_front/internal/domain"
)

// FilterProducts 按筛选条件投影出可见子集。
// 纯函数：对任意输入都有定义，不修改源集合，返回保持源顺序的新切片。
// 选择规则见domain.FilterCriteria.Matches。
func FilterProducts(products []*domain.Product, criteria domain.FilterCriteria) []*domain.Product {
	filtered := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
