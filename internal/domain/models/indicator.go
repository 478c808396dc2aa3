package models

// Indicator is the internal label of one macro series.
type Indicator string

const (
	Yield10Y          Indicator = "yield_10y"
	Yield2Y           Indicator = "yield_2y"
	Unemployment      Indicator = "unemployment"
	InitialClaims     Indicator = "initial_claims"
	GDPGrowth         Indicator = "gdp_growth"
	IndustrialProd    Indicator = "industrial_prod"
	ConsumerSentiment Indicator = "consumer_sentiment"
	CreditSpread      Indicator = "credit_spread"
	HousingStarts     Indicator = "housing_starts"
)

// IsValid reports whether i is one of the nine known indicators.
func (i Indicator) IsValid() bool {
	switch i {
	case Yield10Y, Yield2Y, Unemployment, InitialClaims, GDPGrowth,
		IndustrialProd, ConsumerSentiment, CreditSpread, HousingStarts:
		return true
	}
	return false
}

func (i Indicator) String() string { return string(i) }

// SeriesSpec maps an external FRED series id to an indicator label.
type SeriesSpec struct {
	ID        string    `yaml:"id" json:"id" validate:"required"`
	Indicator Indicator `yaml:"indicator" json:"indicator" validate:"required,oneof=yield_10y yield_2y unemployment initial_claims gdp_growth industrial_prod consumer_sentiment credit_spread housing_starts"`
}

// DefaultSeries is the fixed FRED series table, in fetch order.
func DefaultSeries() []SeriesSpec {
	return []SeriesSpec{
		{ID: "DGS10", Indicator: Yield10Y},
		{ID: "DGS2", Indicator: Yield2Y},
		{ID: "UNRATE", Indicator: Unemployment},
		{ID: "ICSA", Indicator: InitialClaims},
		{ID: "A191RL1Q225SBEA", Indicator: GDPGrowth},
		{ID: "INDPRO", Indicator: IndustrialProd},
		{ID: "UMCSENT", Indicator: ConsumerSentiment},
		{ID: "BAMLC0A4CBBB", Indicator: CreditSpread},
		{ID: "HOUST", Indicator: HousingStarts},
	}
}
