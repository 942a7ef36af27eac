// Package company looks up Corona companies and their billing details.
package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// KeyName is the companies filter on company name
const KeyName = "name"

var ErrNoCompanyKey = errors.New("company: an id or a name is required")

// Registry is the part of the Corona API company lookups need
type Registry interface {
	FetchCompany(ctx context.Context, id int64) (*corona.Company, error)
	FindCompany(ctx context.Context, filters contract.Filters) (*corona.Company, error)
	FetchBillingInfo(ctx context.Context, companyID int64) (corona.Details, error)
}

var _ Registry = (*corona.Client)(nil)

// Info is a company with its billing record
type Info struct {
	corona.Company
	Billing corona.Details `json:"billing,omitempty"`
}

// BuildFilters returns the companies query for a name; an empty name matches everything
func BuildFilters(name string) contract.Filters {
	f := contract.Filters{}
	if name != "" {
		f[KeyName] = name
	}
	return f
}

// Service resolves companies
type Service struct {
	registry Registry
	logger   *logger.Logger
}

// NewService creates a company service
func NewService(registry Registry, log *logger.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   log.Component("company"),
	}
}

// Lookup finds a company by id, or by name when id is zero, and attaches
// its billing details
func (s *Service) Lookup(ctx context.Context, id int64, name string) (*Info, error) {
	var (
		c   *corona.Company
		err error
	)

	switch {
	case id > 0:
		c, err = s.registry.FetchCompany(ctx, id)
	case name != "":
		c, err = s.registry.FindCompany(ctx, BuildFilters(name))
	default:
		return nil, ErrNoCompanyKey
	}
	if err != nil {
		return nil, fmt.Errorf("lookup company: %w", err)
	}

	billing, err := s.registry.FetchBillingInfo(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("billing for company %d: %w", c.ID, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"company_id": c.ID,
		"billing":    billing != nil,
	}).Debug("Company resolved")

	return &Info{Company: *c, Billing: billing}, nil
}
