package models

// Requests for the risk HTTP endpoints.

type HistoryRequest struct {
	Start string `query:"start" json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" json:"end" validate:"omitempty,datetime=2006-01-02"`
}

type ScoreRequest struct {
	Readings map[string]float64 `json:"readings" validate:"required,dive,keys,oneof=yield_10y yield_2y unemployment initial_claims gdp_growth industrial_prod consumer_sentiment credit_spread housing_starts,endkeys"`
}

// ToReadings converts validated request keys to indicators.
func (r ScoreRequest) ToReadings() Readings {
	out := make(Readings, len(r.Readings))
	for k, v := range r.Readings {
		out[Indicator(k)] = v
	}
	return out
}
