package fred

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "RiskFill/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetrics struct {
	fetched map[string]int
	errors  int
}

func (m *fakeMetrics) RecordFetch(series string, observations int, _ float64) {
	if m.fetched == nil {
		m.fetched = map[string]int{}
	}
	m.fetched[series] = observations
}
func (m *fakeMetrics) RecordError(string)            { m.errors++ }
func (m *fakeMetrics) RecordLatency(string, float64) {}
func (m *fakeMetrics) RecordRecords(string, int)     {}
func (m *fakeMetrics) RecordLastRisk(float64)        {}

func TestFetchSeries(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{}
		for k := range q {
			gotQuery[k] = q.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"observations":[
			{"date":"2024-01-03","value":"4.10"},
			{"date":"2024-01-01","value":"4.00"},
			{"date":"2024-01-02","value":"."},
			{"date":"2024-01-04","value":"n/a"}
		]}`)
	}))
	defer srv.Close()

	m := &fakeMetrics{}
	c := New("secret", srv.URL, xhttp.NewClient(xhttp.WithTimeout(time.Second)), nil, m)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs, err := c.FetchSeries(context.Background(), "DGS10", start)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"series_id":         "DGS10",
		"api_key":           "secret",
		"file_type":         "json",
		"observation_start": "2024-01-01",
		"sort_order":        "asc",
	}, gotQuery)

	require.Len(t, obs, 2)
	assert.Equal(t, start, obs[0].Date)
	assert.Equal(t, 4.00, obs[0].Value)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), obs[1].Date)
	assert.Equal(t, 4.10, obs[1].Value)
	assert.Equal(t, 2, m.fetched["DGS10"])
}

func TestFetchSeriesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[]}`)
	}))
	defer srv.Close()

	c := New("k", srv.URL, xhttp.NewClient(), nil, nil)
	obs, err := c.FetchSeries(context.Background(), "HOUST", time.Now())
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestFetchSeriesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusBadRequest)
	}))
	defer srv.Close()

	m := &fakeMetrics{}
	c := New("k", srv.URL, xhttp.NewClient(), nil, m)
	_, err := c.FetchSeries(context.Background(), "UNRATE", time.Now())
	require.Error(t, err)

	var re *RetrievalError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "UNRATE", re.SeriesID)

	var se *xhttp.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, 1, m.errors)
}

func TestFetchSeriesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>`)
	}))
	defer srv.Close()

	c := New("k", srv.URL, xhttp.NewClient(), nil, nil)
	_, err := c.FetchSeries(context.Background(), "ICSA", time.Now())

	var re *RetrievalError
	assert.ErrorAs(t, err, &re)
}

func TestFetchSeriesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"observations":[]}`)
	}))
	defer srv.Close()

	c := New("k", srv.URL, xhttp.NewClient(xhttp.WithTimeout(20*time.Millisecond)), nil, nil)
	_, err := c.FetchSeries(context.Background(), "DGS2", time.Now())

	var re *RetrievalError
	assert.ErrorAs(t, err, &re)
}
