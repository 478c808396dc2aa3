package fred

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"RiskFill/internal/domain/models"
	drepo "RiskFill/internal/domain/repository"
	xhttp "RiskFill/pkg/http"
	"RiskFill/pkg/logger"
	"RiskFill/pkg/util"
)

const DefaultBaseURL = "https://api.stlouisfed.org/fred/series/observations"

// missingValue is how FRED marks a date without an observation.
const missingValue = "."

// RetrievalError reports a series that could not be fetched or decoded.
type RetrievalError struct {
	SeriesID string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("fetch series %s: %v", e.SeriesID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Client implements SeriesFetcher against the FRED observations endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	log     *logger.Logger
	metrics drepo.Metrics
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// New creates a FRED client. Metrics may be nil.
func New(apiKey, baseURL string, hc *xhttp.Client, l *logger.Logger, m drepo.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    hc,
		log:     l,
		metrics: m,
	}
}

// FetchSeries returns the observations of seriesID dated on or after start,
// ascending by date. Missing and non-numeric values are skipped.
func (c *Client) FetchSeries(ctx context.Context, seriesID string, start time.Time) ([]models.Observation, error) {
	began := time.Now()

	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"series_id":         {seriesID},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {util.FormatDate(start)},
			"sort_order":        {"asc"},
		},
	}, &resp)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("fetch")
		}
		return nil, &RetrievalError{SeriesID: seriesID, Err: err}
	}

	out := make([]models.Observation, 0, len(resp.Observations))
	skipped := 0
	for _, o := range resp.Observations {
		v := strings.TrimSpace(o.Value)
		if v == missingValue || v == "" {
			skipped++
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			skipped++
			continue
		}
		d, err := util.ParseDate(o.Date)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, models.Observation{Date: d, Value: f})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	elapsed := time.Since(began)
	if c.metrics != nil {
		c.metrics.RecordFetch(seriesID, len(out), elapsed.Seconds())
	}
	c.log.Debug("fetched series",
		logger.String("series", seriesID),
		logger.Int("observations", len(out)),
		logger.Int("skipped", skipped),
		logger.Duration("took", elapsed),
	)
	return out, nil
}
