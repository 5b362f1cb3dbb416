package domain

import "math"

// MaxOffset caps row offsets. A page that would start beyond it is past the end
// of any listing this service can hold.
const MaxOffset = math.MaxInt32

// TotalPages returns ceil(total/limit) with a floor of 1.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}

// Offset returns the zero-based row offset of page. ok is false when the
// offset would exceed MaxOffset; callers treat that page as empty.
func Offset(page, limit int) (offset int, ok bool) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return 0, true
	}
	if page-1 > MaxOffset/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
