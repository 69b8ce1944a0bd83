package matching

const (
	DefaultPage  = 1
	DefaultLimit = 4
)

// PageMeta describes where a page sits in the full ranked list.
type PageMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Paginate returns items[(page-1)*limit : page*limit], clipped to the slice. Pages are
// 1-indexed; page < 1 becomes 1 and limit < 1 becomes DefaultLimit. A page past the end
// is empty but its meta is still computed.
func Paginate[T any](items []T, page, limit int) ([]T, PageMeta) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// page and limit come straight from requests; never multiply past total
	start := total
	if page-1 < totalPages {
		start = (page - 1) * limit
	}
	end := total
	if limit < total-start {
		end = start + limit
	}

	return items[start:end], PageMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
