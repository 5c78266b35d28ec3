package menu

import "time"

// EffectivePrice resolves what an item actually costs right now.
//
// Resolution order: an active item-level discount wins outright
// (DiscountedPrice takes priority over DiscountPercentage), otherwise an
// active category-level percentage applies, otherwise the base price.
// Item and category discounts never stack. A missing window bound means
// unbounded on that side. The result is never above the base price.
func EffectivePrice(item *MenuItem, category *Category, now time.Time) float64 {
	if itemDiscountActive(item, now) {
		if item.DiscountedPrice > 0 && item.DiscountedPrice < item.Price {
			return item.DiscountedPrice
		}
		if item.DiscountPercentage > 0 {
			return applyPercentage(item.Price, item.DiscountPercentage)
		}
	}
	if category != nil && category.DiscountPercentage > 0 &&
		windowContains(category.DiscountStart, category.DiscountEnd, now) {
		return applyPercentage(item.Price, category.DiscountPercentage)
	}
	return item.Price
}

func itemDiscountActive(item *MenuItem, now time.Time) bool {
	if item.DiscountedPrice <= 0 && item.DiscountPercentage <= 0 {
		return false
	}
	return windowContains(item.DiscountStart, item.DiscountEnd, now)
}

func windowContains(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

func applyPercentage(price, pct float64) float64 {
	if pct >= 100 {
		return 0
	}
	return round2(price * (1 - pct/100))
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
