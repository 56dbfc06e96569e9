// Package service 实现分页窗口计算。
package service

import (
	"github.com/MorseWayne/shop_front/internal/domain"
)

// PageWindow 返回第page页的可见切片：区间[(page-1)*size, page*size)裁剪到[0,len)。
// 纯函数。page越界（含筛选收缩后当前页超出范围）时得到空切片，这是约定行为：
// 筛选条件变化不主动跳页，依赖裁剪表达空页。
func PageWindow(products []*domain.Product, page, size int) []*domain.Product {
	if page < 1 || size <= 0 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(products) {
		return nil
	}

	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// CanGoPrev 判断能否向前翻页。
func CanGoPrev(page int) bool {
	return page > 1
}

// CanGoNext 判断能否向后翻页。
func CanGoNext(page, size, total int) bool {
	return page*size < total
}

// MaxPage 返回筛选后集合的最后一个有效页码，空集合时为第1页。
func MaxPage(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ValidPage 判断页码切换请求是否落在有效范围内。
// 范围外的请求由调用方按无操作拒绝。
func ValidPage(page, total, size int) bool {
	return page >= 1 && page <= MaxPage(total, size)
}
