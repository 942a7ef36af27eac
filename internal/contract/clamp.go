package contract

import "time"

// Clamp restricts a contract to the reporting window [from, to].
// ok is false when the two do not overlap.
func Clamp(c Contract, from, to time.Time) (start, end time.Time, ok bool) {
	start = maxDate(c.start, from)
	end = minDate(c.end, to)

	if end.Before(from) || start.After(to) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
