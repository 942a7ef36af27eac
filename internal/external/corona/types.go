package corona

// Address is one postal address of a site
type Address struct {
	Postcode string `json:"postcode"`
}

// Site is the Corona site a metering point belongs to
type Site struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   int64     `json:"company"`
	Addresses []Address `json:"addresses"`
}

// Postcode returns the first address's postcode, or "" when there is none
func (s *Site) Postcode() string {
	if s == nil || len(s.Addresses) == 0 {
		return ""
	}
	return s.Addresses[0].Postcode
}

// Details is a free-form Corona record (billing info, registration)
// Corona does not publish a stable schema for these, so they are passed through.
type Details map[string]interface{}

// Company is a Corona company
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CompanyNumber string `json:"company_number,omitempty"`
	ParentCompany *int64 `json:"parent_company,omitempty"`
}
