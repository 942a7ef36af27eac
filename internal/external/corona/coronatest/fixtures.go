package coronatest

import (
	"github.com/shopspring/decimal"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
)

// Fixture metering points
const (
	MPANSolar = "008450062012345678910"
	MPANWind  = "008450062012345678911"
	MPANEmpty = "008450062099999999999"
)

func spill(days int) *int { return &days }

// Seed loads a small two-site portfolio.
//
// The solar MPAN has three contracts with a gap before the live one's
// predecessor; the wind MPAN has a cancelled and an unsigned quote.
func (s *Server) Seed() *Server {
	solar := func(id int64, start, end string) contract.Record {
		return contract.Record{
			QuoteID: id, MPAN: MPANSolar, StartDate: start, EndDate: end,
			Contracted: true, Site: 10, MeterType: "E", Technology: "solar",
			CapacityKW: decimal.RequireFromString("250.5"), QuoteType: "flex",
		}
	}
	wind := func(id int64, start, end string, contracted, cancelled bool) contract.Record {
		return contract.Record{
			QuoteID: id, MPAN: MPANWind, StartDate: start, EndDate: end,
			Contracted: contracted, Cancelled: cancelled, Site: 11, MeterType: "I",
			Technology: "wind", CapacityKW: decimal.NewFromInt(1000), QuoteType: "fixed",
		}
	}

	live := solar(102, "2017-09-01", "2017-12-31")
	live.SpillPeriod = spill(30)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes = []contract.Record{
		solar(100, "2017-01-01", "2017-03-31"),
		solar(101, "2017-05-01", "2017-08-31"),
		live,
		wind(150, "2016-01-01", "2016-12-31", false, false),
		wind(200, "2017-01-01", "2017-06-30", true, false),
		wind(201, "2017-07-01", "2017-12-31", true, true),
	}
	s.ProductQuotes[102] = []contract.ProductQuote{{
		PriceType:          "energy",
		Value:              decimal.RequireFromString("45.20"),
		PassThroughPercent: decimal.NewFromInt(90),
		ProductQuoteType:   "fixed",
	}}
	s.Sites[10] = corona.Site{ID: 10, Name: "Sunny Farm", Company: 100,
		Addresses: []corona.Address{{Postcode: "SW1A 1AA"}}}
	s.Sites[11] = corona.Site{ID: 11, Name: "Windy Hill", Company: 101}
	s.Billing[100] = []corona.Details{{"account": "ACC-100"}}
	s.Registrations[MPANSolar] = []corona.Details{{"new_install": true, "go_live_date": "2017-01-01"}}
	s.Companies = []corona.Company{
		{ID: 100, Name: "Sunny Farm Ltd"},
		{ID: 101, Name: "Windy Hill Ltd"},
	}
	return s
}
