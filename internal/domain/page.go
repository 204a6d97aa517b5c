package domain

// Page is a bounded, offset-described slice of an ordered result set. Number is
// the 0-based page index. Pages are derived projections, recomputed per query.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int
	TotalPages    int
	First         bool
	Last          bool
}

// NewPage builds the projection for one page of a remotely counted result set.
// Content is the already-sliced page; total is the full result-set size.
func NewPage[T any](content []T, number, size, total int) Page[T] {
	if size < 1 {
		size = 1
	}
	if number < 0 {
		number = 0
	}
	totalPages := totalPageCount(total, size)
	return Page[T]{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         number == 0,
		Last:          number >= totalPages-1,
	}
}

// PaginateLocal slices an in-memory result set into a Page. The requested page
// index is clamped into [0, totalPages-1]; First/Last are computed from the
// clamped index, since the caller's index may exceed the filtered set.
func PaginateLocal[T any](items []T, number, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := len(items)
	totalPages := totalPageCount(total, size)

	if number < 0 {
		number = 0
	}
	if number > totalPages-1 {
		number = totalPages - 1
	}

	start := number * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Content:       items[start:end],
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         number == 0,
		Last:          number == totalPages-1,
	}
}

// totalPageCount is ceil(total/size), with a minimum of one page so an empty
// result still renders as page 0 of 1.
func totalPageCount(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}
