package pagination

// Default values.
const (
	DefaultPage       = 1
	DefaultLimit      = 10
	DefaultAdminLimit = 20
	MaxLimit          = 100
)

// Normalize clamps page and limit, falling back to def for a missing limit.
func Normalize(page, limit, def int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if def <= 0 {
		def = DefaultLimit
	}
	if limit <= 0 {
		limit = def
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the row offset of a page.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// TotalPages returns the number of pages needed for total rows.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
