package shared

// Filter carries the list query criteria repositories understand. Search is
// a free-text term matched case-insensitively against the fields each
// repository deems searchable; Filters holds exact-match criteria keyed by
// column, where an absent key means no constraint.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the first page of twenty, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}
