package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/limejump/corona-analytics/internal/contract"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// parseDateParam reads an optional YYYY-MM-DD query parameter
func parseDateParam(q url.Values, key string) (time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return time.Time{}, nil
	}
	return contract.ParseDate(key, v)
}

// parseBoolParam reads an optional boolean query parameter
func parseBoolParam(q url.Values, key string, defaultValue bool) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

// parseCriteria reads start, end, contracted and remove_cancelled.
// Both flags default to true.
func parseCriteria(q url.Values) (contract.QueryCriteria, error) {
	var (
		c   contract.QueryCriteria
		err error
	)
	if c.Start, err = parseDateParam(q, "start"); err != nil {
		return c, err
	}
	if c.End, err = parseDateParam(q, "end"); err != nil {
		return c, err
	}
	if c.Contracted, err = parseBoolParam(q, "contracted", true); err != nil {
		return c, err
	}
	if c.RemoveCancelled, err = parseBoolParam(q, "remove_cancelled", true); err != nil {
		return c, err
	}
	return c, c.Validate()
}
