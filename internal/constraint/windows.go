package constraint

// slidingWindows returns every window start p such that the window
// [p, p+size-1] fits entirely within [0, numPeriods). Used by Frequency
// (§4.5.5), Max-absence (§4.5.8), and Shift-frequency (§4.5.9), all of which
// skip (or are vacuous) when the window doesn't fit in the horizon.
func slidingWindows(numPeriods, size int) []int {
	if size > numPeriods {
		return nil
	}
	windows := make([]int, 0, numPeriods-size+1)
	for p := 0; p+size <= numPeriods; p++ {
		windows = append(windows, p)
	}
	return windows
}
