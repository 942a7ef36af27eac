package asset

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
)

var ErrEmptyMPAN = errors.New("asset: mpan is required")

// Meter types
const (
	MeterExport = "export"
	MeterImport = "import"
)

// shortMPANLen is the length of the core MPAN at the end of a full MPAN
const shortMPANLen = 13

// Options narrows the quotes considered for a metering point
type Options struct {
	Start           time.Time
	End             time.Time
	Contracted      bool
	RemoveCancelled bool
}

// DefaultOptions considers signed, non-cancelled contracts over all time
func DefaultOptions() Options {
	return Options{Contracted: true, RemoveCancelled: true}
}

func (o Options) criteria(mpan string) contract.QueryCriteria {
	return contract.QueryCriteria{
		AssetID:         mpan,
		Start:           o.Start,
		End:             o.End,
		Contracted:      o.Contracted,
		RemoveCancelled: o.RemoveCancelled,
	}
}

// Summary is everything known about one metering point
type Summary struct {
	FullMPAN     string
	MPAN         string
	Contracts    contract.Set
	LiveIndex    int
	SiteName     string
	CompanyID    int64
	SitePostcode string
	MeterType    string
	Billing      corona.Details
	Registration corona.Details
	Window       *contract.Window
	Aggregate    *contract.Window
	Pricing      map[int64]contract.Pricing
	LivePricing  *contract.Pricing
}

func newSummary(fullMPAN string, set contract.Set) *Summary {
	live, _ := contract.SelectLive(set)
	sum := &Summary{
		FullMPAN:  fullMPAN,
		MPAN:      ShortMPAN(fullMPAN),
		Contracts: set,
		LiveIndex: live,
	}
	if w, ok := contract.AggregateSpan(set); ok {
		sum.Aggregate = &w
	}
	return sum
}

// HasLive reports whether a live contract was found
func (s *Summary) HasLive() bool {
	return s.LiveIndex >= 0
}

// Live returns the live contract
func (s *Summary) Live() (contract.Contract, bool) {
	if !s.HasLive() {
		return contract.Contract{}, false
	}
	return s.Contracts.At(s.LiveIndex), true
}

// ShortMPAN returns the trailing 13 characters of a full MPAN
func ShortMPAN(full string) string {
	if len(full) <= shortMPANLen {
		return full
	}
	return full[len(full)-shortMPANLen:]
}

// MeterTypeOf maps the Corona meter code of c to export or import
func MeterTypeOf(c contract.Contract) string {
	if c.Export() {
		return MeterExport
	}
	return MeterImport
}

// AssetInfo describes a metering point by its first contract
type AssetInfo struct {
	Technology string          `json:"technology"`
	SiteName   string          `json:"site_name"`
	MeterType  string          `json:"meter_type"`
	CapacityKW decimal.Decimal `json:"kw"`
}

// Period is the part of one contract that falls inside a reporting period
type Period struct {
	QuoteID   int64     `json:"quote_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Cancelled bool      `json:"cancelled"`
}

// Days is the inclusive length of the period
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Attribution clamps each contract to [from, to]; contracts outside are left out
func (s *Summary) Attribution(from, to time.Time) ([]Period, error) {
	q := contract.QueryCriteria{Start: from, End: to}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	periods := []Period{}
	for _, c := range s.Contracts.All() {
		start, end, ok := contract.Clamp(c, from, to)
		if !ok {
			continue
		}
		periods = append(periods, Period{QuoteID: c.ID(), Start: start, End: end, Cancelled: c.Cancelled()})
	}
	return periods, nil
}
