package date

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range spanning the standard period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains returns true when the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Months iterates over the end-of-month dates strictly inside the range.
func (r Range) Months(yield func(Date) bool) {
	for on := r.From.EndOf(Monthly); on.Before(r.To); on = on.Add(1).EndOf(Monthly) {
		if on.After(r.From) && !yield(on) {
			return
		}
	}
}
