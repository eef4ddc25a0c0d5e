package pagination

import "math"

// CalculateOffset returns the row offset of a 1-based page. Offsets that
// would overflow saturate at math.MaxInt.
//
//	page 1, limit 20 -> 0
//	page 3, limit 10 -> 20
func CalculateOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit), never less than 1.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
