package board

import "github.com/deemkeen/noticeboard/domain"

// Filter returns, in their original order, the announcements whose title or
// content contains search (case-insensitive) and whose priority passes f.
func Filter(items []domain.Announcement, search string, f domain.PriorityFilter) []domain.Announcement {
	result := make([]domain.Announcement, 0, len(items))
	for _, a := range items {
		if a.Matches(search) && f.Allows(a.Priority) {
			result = append(result, a)
		}
	}
	return result
}

// TotalPages is ceil(count/size), 0 for an empty set
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate returns the window [(page-1)*size, page*size) of items.
// Pages outside the range yield an empty slice rather than being clamped.
func Paginate(items []domain.Announcement, page, size int) []domain.Announcement {
	if page < 1 || size <= 0 {
		return []domain.Announcement{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []domain.Announcement{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPage bounds a requested page to [1, totalPages]; with no pages it is 1
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
