package jobs

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limejump/corona-analytics/internal/asset"
	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/internal/external/corona/coronatest"
	"github.com/limejump/corona-analytics/pkg/config"
	"github.com/limejump/corona-analytics/pkg/httputil"
	"github.com/limejump/corona-analytics/pkg/logger"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantFirst time.Time
		wantLast  time.Time
	}{
		{time.Date(2017, time.November, 15, 13, 0, 0, 0, time.UTC), contract.Date(2017, time.November, 1), contract.Date(2017, time.November, 30)},
		{time.Date(2016, time.February, 29, 0, 0, 0, 0, time.UTC), contract.Date(2016, time.February, 1), contract.Date(2016, time.February, 29)},
		{time.Date(2017, time.December, 31, 23, 59, 0, 0, time.UTC), contract.Date(2017, time.December, 1), contract.Date(2017, time.December, 31)},
	}

	for _, tt := range tests {
		first, last := MonthBounds(tt.now)
		assert.Equal(t, tt.wantFirst, first)
		assert.Equal(t, tt.wantLast, last)
	}
}

func newWarmJob(t *testing.T) (*WarmJob, *coronatest.Server) {
	t.Helper()
	srv := coronatest.NewServer().Seed()
	t.Cleanup(srv.Close)

	cfg := &config.Config{Corona: config.CoronaConfig{BaseURL: srv.BaseURL(), Token: coronatest.Token}}
	client := corona.NewClient(cfg.Corona, httputil.New(cfg, logger.Nop()), logger.Nop())

	job := NewWarmJob(asset.NewService(client, client, logger.Nop(), 2), "0 0 6 * * *", logger.Nop())
	job.now = func() time.Time { return time.Date(2017, time.November, 6, 6, 0, 0, 0, time.UTC) }
	return job, srv
}

func TestWarmJob_Run(t *testing.T) {
	job, srv := newWarmJob(t)

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, "summary_warm", job.Name())
	assert.Equal(t, "0 0 6 * * *", job.Schedule())

	// the listing query, then one per MPAN; wind has no uncancelled November quote
	assert.Equal(t, 2, srv.CountRequests(corona.PathQuotes))
	assert.Contains(t, srv.Requests()[0], "start_lte=2017-11-30")
	assert.Contains(t, srv.Requests()[0], "end_gte=2017-11-01")
}

func TestWarmJob_RegistryDown(t *testing.T) {
	job, srv := newWarmJob(t)
	srv.FailWith(corona.PathQuotes, http.StatusInternalServerError)

	err := job.Run(context.Background())
	require.Error(t, err)
	var serr *httputil.StatusError
	assert.True(t, errors.As(err, &serr))
}
