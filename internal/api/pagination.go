package api

// PaginatedResponse is a page of items.
type PaginatedResponse[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPaginatedResponse builds a page with HasNext/HasPrev derived from page, limit and total.
// Pages are 1-based; a non-positive page or limit is clamped to 1.
func NewPaginatedResponse[T any](items []T, page, limit, total int) PaginatedResponse[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if total < 0 {
		total = 0
	}
	if items == nil {
		items = []T{}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return PaginatedResponse[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Paginate slices items into the requested page. A page past the end is empty.
func Paginate[T any](items []T, page, limit int) PaginatedResponse[T] {
	p := NewPaginatedResponse[T](nil, page, limit, len(items))
	if p.Page-1 >= p.TotalPages {
		return p
	}
	start := (p.Page - 1) * p.Limit
	end := len(items)
	if p.Limit < end-start {
		end = start + p.Limit
	}
	p.Items = items[start:end]
	return p
}
