package risk

import (
	"testing"

	"RiskFill/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailyOneRecordPerDay(t *testing.T) {
	start, end := day(2024, 1, 1), day(2024, 3, 31)
	out, err := BuildDaily(start, end, nil)
	require.NoError(t, err)
	require.Len(t, out, 91)

	for i, rec := range out {
		assert.Equal(t, start.AddDate(0, 0, i), rec.Date)
		assert.Equal(t, 15.0, rec.Risk)
		assert.Nil(t, rec.YieldCurve)
	}
}

func TestBuildDailySingleDay(t *testing.T) {
	out, err := BuildDaily(day(2024, 5, 5), day(2024, 5, 5), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestBuildDailyRejectsInvertedRange(t *testing.T) {
	_, err := BuildDaily(day(2024, 5, 6), day(2024, 5, 5), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBuildDailyForwardFills(t *testing.T) {
	series := map[models.Indicator][]models.Observation{
		models.Yield10Y: {
			{Date: day(2024, 1, 2), Value: 2.0},
			{Date: day(2024, 1, 5), Value: 4.0},
		},
		models.Yield2Y: {
			{Date: day(2023, 12, 1), Value: 2.6},
		},
		models.Unemployment: {
			{Date: day(2024, 1, 4), Value: 6.0},
		},
		models.HousingStarts: {
			{Date: day(2024, 1, 1), Value: 1400},
		},
	}
	out, err := BuildDaily(day(2024, 1, 1), day(2024, 1, 6), series)
	require.NoError(t, err)
	require.Len(t, out, 6)

	// Jan 1: only 2y yield and housing starts present
	assert.Equal(t, 15.0, out[0].Risk)
	assert.Nil(t, out[0].YieldCurve)

	// Jan 2-3: yc = -0.6 -> +25
	assert.Equal(t, 40.0, out[1].Risk)
	assert.Equal(t, 40.0, out[2].Risk)
	require.NotNil(t, out[1].YieldCurve)

	// Jan 4: unemployment 6.0 -> +8
	assert.Equal(t, 48.0, out[3].Risk)

	// Jan 5-6: yc = 1.4 -> -5, unemployment +8
	assert.Equal(t, 18.0, out[4].Risk)
	assert.Equal(t, 18.0, out[5].Risk)
}

func TestBuildDailyIgnoresObservationsAfterEnd(t *testing.T) {
	series := map[models.Indicator][]models.Observation{
		models.GDPGrowth: {{Date: day(2024, 2, 1), Value: -1}},
	}
	out, err := BuildDaily(day(2024, 1, 1), day(2024, 1, 31), series)
	require.NoError(t, err)
	for _, rec := range out {
		assert.Equal(t, 15.0, rec.Risk)
	}
}
