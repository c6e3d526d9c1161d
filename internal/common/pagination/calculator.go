package pagination

import "math"

// MaxPage is the largest page Clamp lets through; (MaxPage-1)*HardMaxLimit fits in an int.
const MaxPage = math.MaxInt / HardMaxLimit

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// HasNext reports whether rows exist beyond the current page: page*limit < total.
func HasNext(page, limit int, total int64) bool {
	if page < 1 || limit < 1 || total <= 0 {
		return false
	}
	// page > total/limit implies page*limit > total - limit; checked first so the product cannot overflow.
	if int64(page) > total/int64(limit) {
		return false
	}
	return int64(page)*int64(limit) < total
}

// Clamp forces page and limit into range.
// page is clamped into [1, MaxPage]; limit is clamped into [1, cfg.MaxLimit].
func Clamp(page, limit int, cfg Config) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 || maxLimit > HardMaxLimit {
		maxLimit = HardMaxLimit
	}
	switch {
	case limit < 1:
		limit = 1
	case limit > maxLimit:
		limit = maxLimit
	}
	return page, limit
}
