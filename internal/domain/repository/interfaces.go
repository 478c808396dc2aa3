package repository

import (
	"context"
	"time"

	"RiskFill/internal/domain/models"
)

// SeriesFetcher retrieves the observation history of one external series.
// Observations are returned ascending by date with non-numeric values dropped.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, seriesID string, start time.Time) ([]models.Observation, error)
}

// RiskSink receives the finished daily history of one run.
type RiskSink interface {
	Name() string
	Write(ctx context.Context, runID string, records []models.DailyRisk) error
	Close() error
}

type Metrics interface {
	RecordFetch(series string, observations int, seconds float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordRecords(sink string, n int)
	RecordLastRisk(value float64)
}
