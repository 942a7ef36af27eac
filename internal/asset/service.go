package asset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// Registry is the part of the Corona API a summary needs besides quotes
type Registry interface {
	FetchProductQuotes(ctx context.Context, quoteID int64) (contract.Pricing, error)
	FetchSite(ctx context.Context, siteID int64) (*corona.Site, error)
	FetchBillingInfo(ctx context.Context, companyID int64) (corona.Details, error)
	FetchRegistration(ctx context.Context, mpan string) (corona.Details, error)
}

var _ Registry = (*corona.Client)(nil)

// Recorder counts resolution outcomes
type Recorder interface {
	Resolved(outcome string)
}

// Resolution outcomes
const (
	OutcomeLive   = "live"
	OutcomeNoLive = "no_live"
	OutcomeError  = "error"
)

// Service resolves metering points against Corona
type Service struct {
	quotes      corona.QuoteSource
	registry    Registry
	logger      *logger.Logger
	recorder    Recorder
	concurrency int
}

// NewService creates an asset service. concurrency bounds parallel resolutions.
func NewService(quotes corona.QuoteSource, registry Registry, log *logger.Logger, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		quotes:      quotes,
		registry:    registry,
		logger:      log.Component("asset"),
		concurrency: concurrency,
	}
}

// WithRecorder reports resolution outcomes to r
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Summary resolves one metering point: its contracts, the live contract,
// site and billing details, registration and the continuity window.
func (s *Service) Summary(ctx context.Context, mpan string, opts Options) (*Summary, error) {
	sum, err := s.summary(ctx, mpan, opts)
	if err != nil {
		s.resolved(OutcomeError)
		return nil, err
	}
	if sum.HasLive() {
		s.resolved(OutcomeLive)
	} else {
		s.resolved(OutcomeNoLive)
	}
	return sum, nil
}

func (s *Service) summary(ctx context.Context, mpan string, opts Options) (*Summary, error) {
	if mpan == "" {
		return nil, ErrEmptyMPAN
	}

	criteria := opts.criteria(mpan)
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	records, err := s.quotes.FetchQuotes(ctx, contract.BuildFilters(criteria))
	if err != nil {
		return nil, fmt.Errorf("fetch quotes for %s: %w", mpan, err)
	}

	set, err := contract.NewSet(records)
	if err != nil {
		return nil, fmt.Errorf("contracts for %s: %w", mpan, err)
	}

	sum := newSummary(mpan, set)

	if sum.Pricing, err = s.fetchPricing(ctx, set); err != nil {
		return nil, err
	}

	if sum.LiveIndex >= 0 {
		if err := s.fillLive(ctx, sum); err != nil {
			return nil, err
		}
	}

	reg, err := s.registry.FetchRegistration(ctx, mpan)
	if err != nil {
		return nil, fmt.Errorf("registration for %s: %w", mpan, err)
	}
	sum.Registration = reg

	s.logger.WithFields(map[string]interface{}{
		"mpan":      mpan,
		"contracts": set.Len(),
		"live":      sum.HasLive(),
	}).Debug("MPAN resolved")

	return sum, nil
}

// fetchPricing loads product-quote pricing for every contract that carries
// a quote ID, at most s.concurrency requests at a time
func (s *Service) fetchPricing(ctx context.Context, set contract.Set) (map[int64]contract.Pricing, error) {
	var (
		mu  sync.Mutex
		out = make(map[int64]contract.Pricing, set.Len())
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, c := range set.All() {
		id := c.ID()
		if id <= 0 {
			continue
		}
		g.Go(func() error {
			pricing, err := s.registry.FetchProductQuotes(gctx, id)
			if err != nil {
				return fmt.Errorf("pricing for quote %d: %w", id, err)
			}
			mu.Lock()
			out[id] = pricing
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fillLive adds what hangs off the live contract: site, company billing,
// meter type, pricing and the continuity window
func (s *Service) fillLive(ctx context.Context, sum *Summary) error {
	live := sum.Contracts.At(sum.LiveIndex)

	if w, ok := contract.ContinuityFromLive(sum.Contracts, sum.LiveIndex); ok {
		sum.Window = &w
	}
	sum.MeterType = MeterTypeOf(live)

	if pricing, ok := sum.Pricing[live.ID()]; ok {
		sum.LivePricing = &pricing
	}

	site, err := s.registry.FetchSite(ctx, live.SiteID())
	if errors.Is(err, corona.ErrNotFound) {
		s.logger.WithField("site", live.SiteID()).Warn("Live contract points at a missing site")
		return nil
	}
	if err != nil {
		return fmt.Errorf("site %d: %w", live.SiteID(), err)
	}

	sum.SiteName = site.Name
	sum.CompanyID = site.Company
	sum.SitePostcode = site.Postcode()

	billing, err := s.registry.FetchBillingInfo(ctx, site.Company)
	if err != nil {
		return fmt.Errorf("billing for company %d: %w", site.Company, err)
	}
	sum.Billing = billing
	return nil
}

// Summaries resolves many metering points in parallel.
// The first failure cancels the rest.
func (s *Service) Summaries(ctx context.Context, mpans []string, opts Options) (map[string]*Summary, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]*Summary, len(mpans))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, mpan := range mpans {
		mpan := mpan
		g.Go(func() error {
			sum, err := s.Summary(gctx, mpan, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			out[mpan] = sum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMPANs returns the distinct metering points with a quote matching
// criteria, optionally only those of quoteType. The result is sorted.
func (s *Service) ListMPANs(ctx context.Context, criteria contract.QueryCriteria, quoteType string) ([]string, error) {
	records, err := s.fetch(ctx, criteria)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		if quoteType != "" && r.QuoteType != quoteType {
			continue
		}
		seen[r.MPAN] = struct{}{}
	}

	mpans := make([]string, 0, len(seen))
	for m := range seen {
		mpans = append(mpans, m)
	}
	sort.Strings(mpans)
	return mpans, nil
}

// ListQuoteIDs returns the distinct quote ids matching criteria, ascending
func (s *Service) ListQuoteIDs(ctx context.Context, criteria contract.QueryCriteria) ([]int64, error) {
	records, err := s.fetch(ctx, criteria)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.QuoteID]; dup {
			continue
		}
		seen[r.QuoteID] = struct{}{}
		ids = append(ids, r.QuoteID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// MPANsByMeterType resolves every metering point matching criteria and
// describes it by its first contract. meterType ("export"/"import", any case)
// narrows the result; empty keeps all. Points without contracts are skipped.
func (s *Service) MPANsByMeterType(ctx context.Context, criteria contract.QueryCriteria, meterType string) (map[string]AssetInfo, error) {
	mpans, err := s.ListMPANs(ctx, criteria, "")
	if err != nil {
		return nil, err
	}

	opts := DefaultOptions()
	opts.Start, opts.End = criteria.Start, criteria.End

	summaries, err := s.Summaries(ctx, mpans, opts)
	if err != nil {
		return nil, err
	}

	out := make(map[string]AssetInfo, len(summaries))
	for mpan, sum := range summaries {
		if sum.Contracts.Len() == 0 {
			continue
		}
		if meterType != "" && !strings.EqualFold(sum.MeterType, meterType) {
			continue
		}
		first := sum.Contracts.At(0)
		out[mpan] = AssetInfo{
			Technology: first.Technology(),
			SiteName:   sum.SiteName,
			MeterType:  sum.MeterType,
			CapacityKW: first.CapacityKW(),
		}
	}
	return out, nil
}

func (s *Service) fetch(ctx context.Context, criteria contract.QueryCriteria) ([]contract.Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	records, err := s.quotes.FetchQuotes(ctx, contract.BuildFilters(criteria))
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	return records, nil
}

func (s *Service) resolved(outcome string) {
	if s.recorder != nil {
		s.recorder.Resolved(outcome)
	}
}
