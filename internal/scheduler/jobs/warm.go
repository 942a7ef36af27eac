package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/limejump/corona-analytics/internal/asset"
	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// Resolver is what the warm job needs from the asset service
type Resolver interface {
	ListMPANs(ctx context.Context, criteria contract.QueryCriteria, quoteType string) ([]string, error)
	Summaries(ctx context.Context, mpans []string, opts asset.Options) (map[string]*asset.Summary, error)
}

var _ Resolver = (*asset.Service)(nil)

// WarmJob resolves every PPA metering point for the current month so the
// quote cache is populated before the working day starts
type WarmJob struct {
	assets   Resolver
	schedule string
	logger   *logger.Logger
	now      func() time.Time
}

// NewWarmJob creates a new warm job
func NewWarmJob(assets Resolver, schedule string, log *logger.Logger) *WarmJob {
	return &WarmJob{
		assets:   assets,
		schedule: schedule,
		logger:   log.Component("warm_job"),
		now:      time.Now,
	}
}

// Name returns the job name
func (j *WarmJob) Name() string {
	return "summary_warm"
}

// Schedule returns the cron schedule
func (j *WarmJob) Schedule() string {
	return j.schedule
}

// Run resolves all metering points with a contract in the current month
func (j *WarmJob) Run(ctx context.Context) error {
	from, to := MonthBounds(j.now())

	opts := asset.DefaultOptions()
	opts.Start, opts.End = from, to

	mpans, err := j.assets.ListMPANs(ctx, contract.QueryCriteria{
		Start:           from,
		End:             to,
		Contracted:      opts.Contracted,
		RemoveCancelled: opts.RemoveCancelled,
	}, "")
	if err != nil {
		return fmt.Errorf("list mpans: %w", err)
	}

	summaries, err := j.assets.Summaries(ctx, mpans, opts)
	if err != nil {
		return fmt.Errorf("warm summaries: %w", err)
	}

	live := 0
	for _, sum := range summaries {
		if sum.HasLive() {
			live++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"from":  contract.FormatDate(from),
		"to":    contract.FormatDate(to),
		"mpans": len(summaries),
		"live":  live,
	}).Info("Summary cache warmed")

	return nil
}

// MonthBounds returns the first and last day of the month containing t, in UTC
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	first := contract.Date(t.Year(), t.Month(), 1)
	last := first.AddDate(0, 1, -1)
	return first, last
}
