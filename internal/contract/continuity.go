package contract

import "time"

// Window is a continuous coverage range, both ends inclusive
type Window struct {
	StartLive time.Time
	EndLive   time.Time
}

// Days returns the number of covered days
func (w Window) Days() int {
	return int(w.EndLive.Sub(w.StartLive).Hours()/24) + 1
}

// AggregateSpan computes the coverage span over the whole set.
//
// EndLive starts from the earliest end date, not the latest. Every contract
// after index 0 whose start falls on or before EndLive+1 then replaces EndLive
// with its own end, so the result depends on input order.
func AggregateSpan(s Set) (Window, bool) {
	if len(s.contracts) == 0 {
		return Window{}, false
	}

	w := Window{
		StartLive: s.contracts[0].start,
		EndLive:   s.contracts[0].end,
	}
	for _, c := range s.contracts[1:] {
		w.StartLive = minDate(w.StartLive, c.start)
		w.EndLive = minDate(w.EndLive, c.end)
	}

	for _, c := range s.contracts[1:] {
		if !c.start.After(AddDays(w.EndLive, 1)) {
			w.EndLive = c.end
		}
	}

	return w, true
}

// ContinuityFromLive grows the live contract's window by contracts that touch it.
//
// One pass in input order: a contract starting the day after the current end
// extends the end, one ending the day before the current start extends the
// start. The window moves during the pass, so a contract two hops away joins
// only when it comes after its neighbour in the set.
func ContinuityFromLive(s Set, live int) (Window, bool) {
	if live < 0 || live >= len(s.contracts) {
		return Window{}, false
	}

	w := Window{
		StartLive: s.contracts[live].start,
		EndLive:   s.contracts[live].end,
	}
	for i, c := range s.contracts {
		if i == live {
			continue
		}
		if c.start.Equal(AddDays(w.EndLive, 1)) {
			w.EndLive = c.end
		}
		if c.end.Equal(AddDays(w.StartLive, -1)) {
			w.StartLive = c.start
		}
	}

	return w, true
}
