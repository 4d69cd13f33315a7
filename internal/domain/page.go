package domain

import "math"

const (
	ProductPageSize = 10
	VendorPageSize  = 6

	// MaxPage is the highest page number a search will honour.
	MaxPage = math.MaxInt32
)

// Page is one slice of a search result ordered by most recent update.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Query      string `json:"query"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
}

func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage maps page into [1, MaxPage].
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// Offset treats any page below 1 as the first page and never wraps.
func Offset(page, size int) int {
	if size <= 0 {
		return 0
	}
	page = ClampPage(page)
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

func (p *Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p *Page[T]) PrevPage() int {
	return p.Page - 1
}

func (p *Page[T]) NextPage() int {
	return p.Page + 1
}
