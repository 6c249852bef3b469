package catalog

// Page is one slice of a filtered and sorted listing.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Paginate cuts items into pages of pageSize and returns page number page
// (1-indexed). A page below 1 is treated as 1. A pageSize of zero or less
// returns everything on a single page. Pages past the end are empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
	// page-1 is compared before multiplying so huge page numbers cannot overflow.
	if page-1 >= totalPages {
		return result
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = make([]T, end-start)
	copy(result.Items, items[start:end])
	return result
}

// Run filters, sorts and paginates items according to q.
func Run[T any](items []T, facets FacetFunc[T], q Query) Page[T] {
	filtered := Filter(items, facets, q.Criteria)
	sorted := Sort(filtered, facets, q.Sort)
	return Paginate(sorted, q.Page, q.PageSize)
}
