package catalog

// DefaultPerPage is the page size used when the request does not specify one.
const DefaultPerPage = 12

// Pagination is a requested page. Zero values mean "not specified".
type Pagination struct {
	Page    int
	PerPage int
}

// OffsetLimit converts the requested page into an offset/limit pair. Missing
// or out-of-range values silently fall back to page 1 and DefaultPerPage.
func (p Pagination) OffsetLimit() (offset, limit int) {
	limit = p.PerPage
	if limit <= 0 {
		limit = DefaultPerPage
	}

	page := p.Page
	if page < 1 {
		page = 1
	}

	return (page - 1) * limit, limit
}
