package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination clamps page and pageSize and computes the window over total
// items. From and To are 1-based and zero for an empty page.
func NewPagination(page, pageSize, maxPageSize, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = maxPageSize
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: int64(total),
		TotalPages: int64((total + pageSize - 1) / pageSize),
	}
	start, end := p.Bounds()
	p.HasMore = end < total
	if end > start {
		p.From = start + 1
		p.To = end
	}
	return p
}

// Bounds returns the slice indices of the current page.
func (p *Pagination) Bounds() (start, end int) {
	total := int(p.TotalItems)
	start = min((p.Page-1)*p.PageSize, total)
	end = min(start+p.PageSize, total)
	return start, end
}
