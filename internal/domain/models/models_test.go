package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRiskJSON(t *testing.T) {
	yc := -0.8
	cases := []struct {
		risk float64
		want string
	}{
		{40, `{"date":"2024-01-01","risk":40.0}`},
		{15.5, `{"date":"2024-01-01","risk":15.5}`},
		{95, `{"date":"2024-01-01","risk":95.0}`},
	}
	for _, tc := range cases {
		d := DailyRisk{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Risk: tc.risk, YieldCurve: &yc}
		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))

		var back DailyRisk
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, d.Date, back.Date)
		assert.Equal(t, tc.risk, back.Risk)
		assert.Nil(t, back.YieldCurve)
	}
}

func TestDailyRiskUnmarshalBadDate(t *testing.T) {
	var d DailyRisk
	assert.Error(t, json.Unmarshal([]byte(`{"date":"01/01/2024","risk":1}`), &d))
}

func TestIndicators(t *testing.T) {
	series := DefaultSeries()
	require.Len(t, series, 9)
	seen := map[Indicator]bool{}
	for _, s := range series {
		assert.True(t, s.Indicator.IsValid(), s.Indicator)
		assert.False(t, seen[s.Indicator])
		seen[s.Indicator] = true
	}
	assert.False(t, Indicator("vix").IsValid())
}

func TestScoreRequestToReadings(t *testing.T) {
	r := ScoreRequest{Readings: map[string]float64{"unemployment": 5.5}}
	got := r.ToReadings()
	v, ok := got.Get(Unemployment)
	assert.True(t, ok)
	assert.Equal(t, 5.5, v)
	_, ok = got.Get(Yield2Y)
	assert.False(t, ok)
}
