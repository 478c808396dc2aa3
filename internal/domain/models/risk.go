package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// DailyRisk is one row of the backfilled history.
type DailyRisk struct {
	Date       time.Time
	Risk       float64
	YieldCurve *float64 // 10y minus 2y, nil when either yield is missing
}

// DateString formats Date as YYYY-MM-DD.
func (d DailyRisk) DateString() string { return d.Date.Format(DateLayout) }

// MarshalJSON writes the flat output shape {"date":"YYYY-MM-DD","risk":40.0}.
// Risk is always written with exactly one decimal place.
func (d DailyRisk) MarshalJSON() ([]byte, error) {
	date, err := json.Marshal(d.DateString())
	if err != nil {
		return nil, err
	}
	risk := decimal.NewFromFloat(d.Risk).StringFixed(1)
	return []byte(fmt.Sprintf(`{"date":%s,"risk":%s}`, date, risk)), nil
}

func (d *DailyRisk) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date string  `json:"date"`
		Risk float64 `json:"risk"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", raw.Date, err)
	}
	d.Date = t
	d.Risk = raw.Risk
	d.YieldCurve = nil
	return nil
}

// ScoreResult is the output of scoring one day of readings.
type ScoreResult struct {
	Risk       float64  `json:"risk"`
	YieldCurve *float64 `json:"yield_curve"`
}
