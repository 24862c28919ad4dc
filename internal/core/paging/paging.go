// Package paging clamps page numbers and computes the page window shown
// around the current page
package paging

// PageSize is the number of rows per page
const PageSize = 100

// WindowSize is the number of page links around the current page
const WindowSize = 5

// Pages returns the page count for total rows, at least 1
func Pages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// Clamp bounds page to [1, Pages(total)]. The sentinel 0 maps to page 1.
func Clamp(page, total int) int {
	return min(max(page, 1), Pages(total))
}

// Window returns up to WindowSize page numbers centred on current where
// possible, shifted to stay within [1, pages]
func Window(current, pages int) []int {
	pages = max(pages, 1)
	current = min(max(current, 1), pages)
	start := max(current-WindowSize/2, 1)
	end := min(start+WindowSize-1, pages)
	start = max(end-WindowSize+1, 1)
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// Bounds returns the [lo, hi) slice bounds of page over total rows
func Bounds(page, total int) (lo, hi int) {
	page = Clamp(page, total)
	lo = min((page-1)*PageSize, max(total, 0))
	hi = min(lo+PageSize, max(total, 0))
	return lo, hi
}

// Slice returns the rows of a clamped page
func Slice[T any](rows []T, page int) []T {
	lo, hi := Bounds(page, len(rows))
	return rows[lo:hi]
}
