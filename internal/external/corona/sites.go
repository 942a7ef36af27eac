package corona

import (
	"context"
	"net/url"
	"strconv"
)

// FetchSite loads the site a contract points at
func (c *Client) FetchSite(ctx context.Context, siteID int64) (*Site, error) {
	var site Site
	if err := c.get(ctx, PathSites, c.detailURL(PathSites, siteID), nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// FetchBillingInfo returns the billing record of a company, or nil when it has none.
// Corona answers with a list; only one entry is expected.
func (c *Client) FetchBillingInfo(ctx context.Context, companyID int64) (Details, error) {
	query := url.Values{"company": {strconv.FormatInt(companyID, 10)}}
	return c.first(ctx, PathBillingInfo, query)
}

// FetchRegistration returns the registration record of a metering point, or nil
func (c *Client) FetchRegistration(ctx context.Context, mpan string) (Details, error) {
	return c.first(ctx, PathRegistrations, url.Values{"mpan": {mpan}})
}

func (c *Client) first(ctx context.Context, path string, query url.Values) (Details, error) {
	var items []Details
	if err := c.get(ctx, path, c.collectionURL(path), query, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}
