package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"RiskFill/internal/domain/models"
	drepo "RiskFill/internal/domain/repository"
	"RiskFill/internal/services/risk"
	"RiskFill/pkg/logger"
	"RiskFill/pkg/util"

	"golang.org/x/sync/errgroup"
)

// HistoryBuilder fetches every configured series and scores each day of a range.
type HistoryBuilder struct {
	fetcher  drepo.SeriesFetcher
	series   []models.SeriesSpec
	parallel int
	metrics  drepo.Metrics
	log      *logger.Logger
}

func NewHistoryBuilder(fetcher drepo.SeriesFetcher, series []models.SeriesSpec, parallel int, metrics drepo.Metrics, l *logger.Logger) *HistoryBuilder {
	if len(series) == 0 {
		series = models.DefaultSeries()
	}
	if parallel < 1 {
		parallel = 1
	}
	if l == nil {
		l = logger.Nop()
	}
	return &HistoryBuilder{fetcher: fetcher, series: series, parallel: parallel, metrics: metrics, log: l}
}

// Build returns one DailyRisk per calendar day in [start, end], ascending.
// Any series retrieval failure aborts the whole build.
func (b *HistoryBuilder) Build(ctx context.Context, start, end time.Time) ([]models.DailyRisk, error) {
	start, end = util.TruncateDay(start), util.TruncateDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("build history %s..%s: %w", util.FormatDate(start), util.FormatDate(end), risk.ErrInvalidRange)
	}

	began := time.Now()
	data, err := b.fetchAll(ctx, start)
	if err != nil {
		return nil, err
	}

	records, err := risk.BuildDaily(start, end, data)
	if err != nil {
		return nil, err
	}
	if b.metrics != nil {
		b.metrics.RecordLatency("build", time.Since(began).Seconds())
	}
	b.log.Info("built daily risk records", logger.Int("count", len(records)))
	return records, nil
}

func (b *HistoryBuilder) fetchAll(ctx context.Context, start time.Time) (map[models.Indicator][]models.Observation, error) {
	var mu sync.Mutex
	data := make(map[models.Indicator][]models.Observation, len(b.series))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallel)
	for _, s := range b.series {
		g.Go(func() error {
			b.log.Info("fetching series", logger.String("series", s.ID), logger.String("indicator", s.Indicator.String()))
			obs, err := b.fetcher.FetchSeries(gctx, s.ID, start)
			if err != nil {
				return err
			}
			b.log.Info("got observations", logger.String("series", s.ID), logger.Int("count", len(obs)))

			mu.Lock()
			data[s.Indicator] = obs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
