package derived

// DefaultPerPage is used when a non-positive page size is requested.
const DefaultPerPage = 10

// Page describes one page of a list. Start and End are zero-based bounds
// into the full list, End exclusive.
type Page struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Start      int `json:"-"`
	End        int `json:"-"`
}

// Paginate computes page bounds. Out of range pages are clamped to the
// first or last page.
func Paginate(totalItems, perPage, page int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + perPage - 1) / perPage
	lastPage := max(totalPages, 1)
	page = min(max(page, 1), lastPage)

	start := min((page-1)*perPage, totalItems)
	end := min(start+perPage, totalItems)

	return Page{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// PageItems returns the items of the requested (clamped) page.
func PageItems[T any](items []T, perPage, page int) ([]T, Page) {
	p := Paginate(len(items), perPage, page)
	out := make([]T, p.End-p.Start)
	copy(out, items[p.Start:p.End])

	return out, p
}
