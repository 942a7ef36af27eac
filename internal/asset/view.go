package asset

import (
	"github.com/shopspring/decimal"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
)

// ContractView is the JSON shape of one contract
type ContractView struct {
	QuoteID    int64             `json:"quote_id"`
	Start      string            `json:"contract_start_date"`
	End        string            `json:"contract_end_date"`
	Cancelled  bool              `json:"cancelled"`
	Contracted bool              `json:"contracted_ppa"`
	SpillStart string            `json:"spill_start,omitempty"`
	SpillEnd   string            `json:"spill_end,omitempty"`
	Site       int64             `json:"site"`
	MeterType  string            `json:"meter_type"`
	Technology string            `json:"technology"`
	CapacityKW decimal.Decimal   `json:"capacity_kw"`
	QuoteType  string            `json:"quote_type"`
	Pricing    *contract.Pricing `json:"pricing,omitempty"`
	Live       bool              `json:"live"`
}

// WindowView is the JSON shape of a coverage window
type WindowView struct {
	StartLive string `json:"start_live"`
	EndLive   string `json:"end_live"`
	Days      int    `json:"days"`
}

// SummaryView is the JSON shape of a Summary
type SummaryView struct {
	FullMPAN     string            `json:"full_mpan"`
	MPAN         string            `json:"mpan"`
	SiteName     string            `json:"site_name,omitempty"`
	CompanyID    int64             `json:"company_id,omitempty"`
	SitePostcode string            `json:"site_postcode,omitempty"`
	MeterType    string            `json:"meter_type,omitempty"`
	LiveQuoteID  int64             `json:"live_quote_id,omitempty"`
	Window       *WindowView       `json:"continuity,omitempty"`
	Aggregate    *WindowView       `json:"aggregate,omitempty"`
	Contracts    []ContractView    `json:"contracts"`
	LivePricing  *contract.Pricing `json:"live_pricing,omitempty"`
	Billing      corona.Details    `json:"billing,omitempty"`
	Registration corona.Details    `json:"registration,omitempty"`
}

// View renders the summary for JSON output
func (s *Summary) View() SummaryView {
	v := SummaryView{
		FullMPAN:     s.FullMPAN,
		MPAN:         s.MPAN,
		SiteName:     s.SiteName,
		CompanyID:    s.CompanyID,
		SitePostcode: s.SitePostcode,
		MeterType:    s.MeterType,
		LivePricing:  s.LivePricing,
		Billing:      s.Billing,
		Registration: s.Registration,
		Contracts:    make([]ContractView, 0, s.Contracts.Len()),
	}

	if live, ok := s.Live(); ok {
		v.LiveQuoteID = live.ID()
	}
	v.Window = windowView(s.Window)
	v.Aggregate = windowView(s.Aggregate)

	for i, c := range s.Contracts.All() {
		cv := ContractView{
			QuoteID:    c.ID(),
			Start:      contract.FormatDate(c.Start()),
			End:        contract.FormatDate(c.End()),
			Cancelled:  c.Cancelled(),
			Contracted: c.Contracted(),
			Site:       c.SiteID(),
			MeterType:  c.MeterType(),
			Technology: c.Technology(),
			CapacityKW: c.CapacityKW(),
			QuoteType:  c.QuoteType(),
			Live:       i == s.LiveIndex,
		}
		if p, ok := s.Pricing[c.ID()]; ok {
			cv.Pricing = &p
		}
		if start, end, ok := c.Spill(); ok {
			cv.SpillStart = contract.FormatDate(start)
			cv.SpillEnd = contract.FormatDate(end)
		}
		v.Contracts = append(v.Contracts, cv)
	}
	return v
}

func windowView(w *contract.Window) *WindowView {
	if w == nil {
		return nil
	}
	return &WindowView{
		StartLive: contract.FormatDate(w.StartLive),
		EndLive:   contract.FormatDate(w.EndLive),
		Days:      w.Days(),
	}
}
