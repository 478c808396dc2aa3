package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "RiskFill/internal/domain/models"
	"RiskFill/internal/service/fred"
	"RiskFill/internal/services/risk"
	xlogger "RiskFill/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuilder struct {
	start, end time.Time
	records    []models.DailyRisk
	err        error
}

func (s *stubBuilder) Build(_ context.Context, start, end time.Time) ([]models.DailyRisk, error) {
	s.start, s.end = start, end
	return s.records, s.err
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(b *stubBuilder) *echo.Echo {
	h := NewRiskEchoHandler(xlogger.Nop(), b, 730)
	h.now = func() time.Time { return time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC) }
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHistory(t *testing.T) {
	b := &stubBuilder{records: []models.DailyRisk{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Risk: 40},
	}}
	e := newTestServer(b)

	rec, env := do(e, http.MethodGet, "/api/risk/history?start=2024-01-01&end=2024-01-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rows":[{"date":"2024-01-01","risk":40.0}],"total":1}`, string(env.Data))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), b.start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), b.end)
}

func TestHistoryDefaultsToTrailingWindow(t *testing.T) {
	b := &stubBuilder{}
	e := newTestServer(b)

	rec, _ := do(e, http.MethodGet, "/api/risk/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), b.end)
	assert.Equal(t, time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC), b.start)
}

func TestHistoryRejectsBadDate(t *testing.T) {
	e := newTestServer(&stubBuilder{})

	rec, env := do(e, http.MethodGet, "/api/risk/history?start=01/02/2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), `"field":"start"`)
	assert.Contains(t, string(env.Data), "ERR_DATETIME")
}

func TestHistoryRejectsHugeRange(t *testing.T) {
	e := newTestServer(&stubBuilder{})

	rec, _ := do(e, http.MethodGet, "/api/risk/history?start=1990-01-01&end=2024-01-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"upstream", &fred.RetrievalError{SeriesID: "DGS10", Err: errors.New("timeout")}, http.StatusBadGateway, "ERR_RETRIEVAL"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestServer(&stubBuilder{err: tc.err})
			rec, env := do(e, http.MethodGet, "/api/risk/history?start=2024-01-01&end=2024-01-02", "")
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, string(env.Data), tc.code)
		})
	}
}

func TestHistoryInvertedRange(t *testing.T) {
	b := &stubBuilder{err: fmt.Errorf("build history: %w", risk.ErrInvalidRange)}
	e := newTestServer(b)

	rec, env := do(e, http.MethodGet, "/api/risk/history?start=2024-02-01&end=2024-01-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_BAD_REQUEST")
}

func TestScore(t *testing.T) {
	e := newTestServer(&stubBuilder{})

	body := `{"readings":{"yield_10y":4.0,"yield_2y":4.8,"unemployment":4.5}}`
	rec, env := do(e, http.MethodPost, "/api/risk/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.ScoreResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 40.0, res.Risk)
	require.NotNil(t, res.YieldCurve)
	assert.InDelta(t, -0.8, *res.YieldCurve, 1e-9)
}

func TestScoreRejectsUnknownIndicator(t *testing.T) {
	e := newTestServer(&stubBuilder{})

	rec, _ := do(e, http.MethodPost, "/api/risk/score", `{"readings":{"vix":30}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreRequiresReadings(t *testing.T) {
	e := newTestServer(&stubBuilder{})

	rec, _ := do(e, http.MethodPost, "/api/risk/score", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
