package corona

import (
	"context"
	"fmt"

	"github.com/limejump/corona-analytics/internal/contract"
)

// FetchCompany loads a company by id
func (c *Client) FetchCompany(ctx context.Context, id int64) (*Company, error) {
	var company Company
	if err := c.get(ctx, PathCompanies, c.detailURL(PathCompanies, id), nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// FindCompany returns the first company matching filters
func (c *Client) FindCompany(ctx context.Context, filters contract.Filters) (*Company, error) {
	var companies []Company
	if err := c.get(ctx, PathCompanies, c.collectionURL(PathCompanies), filters.Values(), &companies); err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w: company %s", ErrNotFound, filters.Encode())
	}
	return &companies[0], nil
}
