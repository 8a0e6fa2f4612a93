package client

import "employee-directory/internal/model"

const DefaultPageSize = 10

// Paginate returns page (1-based) of items and the total page count. Pages
// out of range are clamped; an empty list has one empty page.
func Paginate(items []model.Employee, page, size int) ([]model.Employee, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], pages
}
