package commands

import (
	"time"

	"github.com/limejump/corona-analytics/internal/contract"
)

// parseDateFlag parses an optional YYYY-MM-DD flag value
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return contract.ParseDate(name, value)
}
