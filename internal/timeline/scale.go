package timeline

import "math"

// Column maps an axis fraction to a column in [0, cols).
func Column(position float64, cols int) int {
	c := int(math.Floor(position * float64(cols)))
	return max(0, min(c, cols-1))
}

// Span maps a bar to a start column and a length of at least one column,
// clipped to cols.
func (b Bar) Span(cols int) (start, length int) {
	start = Column(b.Left, cols)
	end := int(math.Ceil((b.Left + b.Width) * float64(cols)))
	end = min(end, cols)
	return start, max(1, end-start)
}

// Filled returns how many of the bar's length columns the progress covers.
func (b Bar) Filled(length int) int {
	return int(math.Round(float64(length) * float64(b.Progress) / 100))
}
