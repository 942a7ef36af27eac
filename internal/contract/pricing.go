package contract

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProductQuote is one price component of a PPA quote
type ProductQuote struct {
	PriceType          string          `json:"price_type"`
	Value              decimal.Decimal `json:"value"`
	PassThroughPercent decimal.Decimal `json:"pass_through_percent"`
	ProductQuoteType   string          `json:"product_quote_type"`
}

// Pricing indexes a quote's price components by price type
type Pricing struct {
	Values        map[string]decimal.Decimal `json:"values"`
	PassThroughs  map[string]decimal.Decimal `json:"pass_throughs"`
	ContractTypes map[string]string          `json:"contract_types"`
}

// NewPricing folds product quotes into a Pricing; pass-throughs become fractions.
// A later component with the same price type overwrites an earlier one.
func NewPricing(quotes []ProductQuote) Pricing {
	p := Pricing{
		Values:        make(map[string]decimal.Decimal, len(quotes)),
		PassThroughs:  make(map[string]decimal.Decimal, len(quotes)),
		ContractTypes: make(map[string]string, len(quotes)),
	}
	for _, q := range quotes {
		p.Values[q.PriceType] = q.Value
		p.PassThroughs[q.PriceType] = q.PassThroughPercent.Div(hundred)
		p.ContractTypes[q.PriceType] = q.ProductQuoteType
	}
	return p
}
