package usecase

// totalPages is ceil(count / pageSize). pageSize must be positive;
// callers validate before reaching here.
func totalPages(count int, pageSize int) int {
	if count == 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// paginate slices one page out of items. A page past the end yields an
// empty slice, not an error.
func paginate[T any](items []T, pageNumber int, pageSize int) []T {
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// validPage rejects non-positive pagination parameters. Payment and
// balance pagination share the same rule.
func validPage(pageNumber int, pageSize int) bool {
	return pageNumber > 0 && pageSize > 0
}
