package contract

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Filter keys understood by the registry's ppa/quotes endpoint
const (
	KeyMPAN            = "mpan"
	KeyContracted      = "contracted_ppa"
	KeyRemoveCancelled = "remove_cancelled_contracts"
	KeyStartLTE        = "contract_start_date_lte"
	KeyEndGTE          = "contract_end_date_gte"
	KeyStartGTE        = "contract_start_date_gte"
	KeyEndLTE          = "contract_end_date_lte"
)

var ErrInvertedRange = errors.New("contract: query start date after end date")

// QueryCriteria describes a ppa/quotes query. Zero dates are absent.
type QueryCriteria struct {
	AssetID         string
	Start           time.Time
	End             time.Time
	Contracted      bool
	RemoveCancelled bool
}

// Validate rejects a range whose start is after its end
func (q QueryCriteria) Validate() error {
	if !q.Start.IsZero() && !q.End.IsZero() && q.Start.After(q.End) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedRange, FormatDate(q.Start), FormatDate(q.End))
	}
	return nil
}

// Filters is the query-string form of a registry filter
type Filters map[string]string

// Values converts the filters for an outbound request
func (f Filters) Values() url.Values {
	v := make(url.Values, len(f))
	for k, val := range f {
		v.Set(k, val)
	}
	return v
}

// Encode renders the filters as a stable, key-sorted query string
func (f Filters) Encode() string {
	return f.Values().Encode()
}

// BoolString renders a boolean the way the registry expects it
func BoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// BuildFilters turns criteria into registry filters.
//
// Flags are only sent when true; a false flag is left out rather than sent as
// "false", so the registry cannot tell "off" from "unset".
// With both dates the filter is the overlap test
// NOT(contract ends before Start OR contract starts after End).
func BuildFilters(q QueryCriteria) Filters {
	f := Filters{}

	if q.AssetID != "" {
		f[KeyMPAN] = q.AssetID
	}
	if q.Contracted {
		f[KeyContracted] = BoolString(q.Contracted)
	}
	if q.RemoveCancelled {
		f[KeyRemoveCancelled] = BoolString(q.RemoveCancelled)
	}

	switch {
	case !q.Start.IsZero() && !q.End.IsZero():
		f[KeyStartLTE] = FormatDate(q.End)
		f[KeyEndGTE] = FormatDate(q.Start)
	case !q.Start.IsZero():
		f[KeyStartGTE] = FormatDate(q.Start)
	case !q.End.IsZero():
		f[KeyEndLTE] = FormatDate(q.End)
	}

	return f
}
