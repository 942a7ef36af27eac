package contract

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeSpill    = errors.New("contract: negative spill period")
	ErrInvertedContract = errors.New("contract: start date after end date")
)

// Record is one PPA quote row as decoded from the registry
// Dates are still text here; NewContract parses them exactly once.
type Record struct {
	QuoteID     int64           `json:"quote_id"`
	MPAN        string          `json:"mpan"`
	StartDate   string          `json:"contract_start_date"`
	EndDate     string          `json:"contract_end_date"`
	Cancelled   bool            `json:"cancelled"`
	Contracted  bool            `json:"contracted_ppa"`
	SpillPeriod *int            `json:"spill_period"`
	Site        int64           `json:"site"`
	MeterType   string          `json:"meter_type"`
	Technology  string          `json:"technology"`
	CapacityKW  decimal.Decimal `json:"capacity_kw"`
	QuoteType   string          `json:"quote_type"`
}

// Contract is an immutable, time-bounded PPA agreement
type Contract struct {
	id          int64
	mpan        string
	start       time.Time
	end         time.Time
	cancelled   bool
	contracted  bool
	spillPeriod int
	hasSpill    bool
	spillStart  time.Time
	spillEnd    time.Time
	site        int64
	meterType   string
	technology  string
	capacityKW  decimal.Decimal
	quoteType   string
}

// NewContract validates a record and derives its spill window
func NewContract(r Record) (Contract, error) {
	start, err := ParseDate("contract_start_date", r.StartDate)
	if err != nil {
		return Contract{}, err
	}
	end, err := ParseDate("contract_end_date", r.EndDate)
	if err != nil {
		return Contract{}, err
	}
	if start.After(end) {
		return Contract{}, fmt.Errorf("%w: quote %d %s > %s",
			ErrInvertedContract, r.QuoteID, r.StartDate, r.EndDate)
	}

	c := Contract{
		id:         r.QuoteID,
		mpan:       r.MPAN,
		start:      start,
		end:        end,
		cancelled:  r.Cancelled,
		contracted: r.Contracted,
		site:       r.Site,
		meterType:  r.MeterType,
		technology: r.Technology,
		capacityKW: r.CapacityKW,
		quoteType:  r.QuoteType,
	}

	if r.SpillPeriod != nil {
		if *r.SpillPeriod < 0 {
			return Contract{}, fmt.Errorf("%w: quote %d spill_period %d",
				ErrNegativeSpill, r.QuoteID, *r.SpillPeriod)
		}
		c.spillPeriod = *r.SpillPeriod
		c.hasSpill = true
	}
	if c.spillPeriod > 0 {
		c.spillStart = start
		c.spillEnd = AddDays(start, c.spillPeriod-1)
	}

	return c, nil
}

// ID returns the quote identifier; 0 means absent
func (c Contract) ID() int64 { return c.id }

func (c Contract) MPAN() string { return c.mpan }
func (c Contract) Start() time.Time { return c.start }
func (c Contract) End() time.Time { return c.end }
func (c Contract) Cancelled() bool { return c.cancelled }
func (c Contract) Contracted() bool { return c.contracted }
func (c Contract) SiteID() int64 { return c.site }
func (c Contract) MeterType() string { return c.meterType }
func (c Contract) Technology() string { return c.technology }
func (c Contract) QuoteType() string { return c.quoteType }
func (c Contract) CapacityKW() decimal.Decimal { return c.capacityKW }

// SpillPeriod returns the spill length in days and whether the record carried one
func (c Contract) SpillPeriod() (int, bool) {
	return c.spillPeriod, c.hasSpill
}

// Spill returns the spill sub-interval; ok is false when the spill period is absent or 0
func (c Contract) Spill() (start, end time.Time, ok bool) {
	if c.spillPeriod <= 0 {
		return time.Time{}, time.Time{}, false
	}
	return c.spillStart, c.spillEnd, true
}

// Export reports whether the meter exports to the grid
func (c Contract) Export() bool {
	return c.meterType == "E"
}
