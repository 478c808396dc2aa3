package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"RiskFill/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeFetcher struct {
	mu     sync.Mutex
	data   map[string][]models.Observation
	fail   map[string]error
	called []string
}

func (f *fakeFetcher) FetchSeries(_ context.Context, seriesID string, _ time.Time) ([]models.Observation, error) {
	f.mu.Lock()
	f.called = append(f.called, seriesID)
	f.mu.Unlock()
	if err := f.fail[seriesID]; err != nil {
		return nil, err
	}
	return f.data[seriesID], nil
}

type memSink struct {
	name   string
	runID  string
	got    []models.DailyRisk
	err    error
	closed bool
}

func (s *memSink) Name() string { return s.name }
func (s *memSink) Write(_ context.Context, runID string, records []models.DailyRisk) error {
	if s.err != nil {
		return s.err
	}
	s.runID = runID
	s.got = records
	return nil
}
func (s *memSink) Close() error { s.closed = true; return nil }

type recMetrics struct {
	records  map[string]int
	errors   []string
	lastRisk float64
}

func (m *recMetrics) RecordFetch(string, int, float64) {}
func (m *recMetrics) RecordError(kind string)          { m.errors = append(m.errors, kind) }
func (m *recMetrics) RecordLatency(string, float64)    {}
func (m *recMetrics) RecordRecords(sink string, n int) {
	if m.records == nil {
		m.records = map[string]int{}
	}
	m.records[sink] = n
}
func (m *recMetrics) RecordLastRisk(v float64) { m.lastRisk = v }

var errUpstream = errors.New("upstream down")
