package catalog

// SortKey enumerates the supported catalogue orderings.
type SortKey string

const (
	SortHighPrice SortKey = "high-price"
	SortLowPrice  SortKey = "low-price"
	SortOldest    SortKey = "oldest"
	SortNewest    SortKey = "newest"
)

// ParseSort maps a raw sort parameter onto a SortKey. Unrecognised or absent
// values fall back to newest-first rather than failing.
func ParseSort(raw string) SortKey {
	switch SortKey(raw) {
	case SortHighPrice, SortLowPrice, SortOldest, SortNewest:
		return SortKey(raw)
	default:
		return SortNewest
	}
}

// OrderBy returns the ORDER BY expression for the key, against the aliased
// products table used by the list queries.
func (k SortKey) OrderBy() string {
	switch k {
	case SortHighPrice:
		return "p.price DESC"
	case SortLowPrice:
		return "p.price ASC"
	case SortOldest:
		return "p.created_at ASC"
	default:
		return "p.created_at DESC"
	}
}
