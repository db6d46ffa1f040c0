package printer

// selectPositions applies the record window and predicate flags to the
// reconciled ordering. The minimum bound is clamped into [0, total-1]; a
// maximum bound of zero means no upper limit. An equal minimum and maximum
// select nothing, which is not an error; a minimum above the maximum is.
func selectPositions(positions []orderedPosition, apply []int64, locmin, locmax int) ([]orderedPosition, error) {
	total := len(positions)
	if total == 0 {
		return nil, nil
	}
	if locmin >= total {
		locmin = total - 1
	}
	if locmin < 0 {
		locmin = 0
	}
	if locmax == 0 {
		locmax = total
	}
	if locmin > locmax {
		return nil, InvalidRangeError{Min: locmin, Max: locmax}
	}

	var selected []orderedPosition
	for _, pos := range positions {
		if pos.Loc >= int64(locmin) && pos.Loc < int64(locmax) && apply[pos.Idx] != 0 {
			selected = append(selected, pos)
		}
	}
	return selected, nil
}

// pageSize returns how many record columns fit one table block. Each value
// column costs its width plus the " | " separator; at least one record
// prints per page even when it overflows the width budget.
func pageSize(maxTextWidth, nameWidth, columnWidth int) int {
	n := (maxTextWidth - nameWidth) / (columnWidth + 3)
	if n < 1 {
		n = 1
	}
	return n
}

// paginate splits the selected positions into consecutive pages.
func paginate(selected []orderedPosition, perPage int) [][]orderedPosition {
	var pages [][]orderedPosition
	for start := 0; start < len(selected); start += perPage {
		end := start + perPage
		if end > len(selected) {
			end = len(selected)
		}
		pages = append(pages, selected[start:end])
	}
	return pages
}
