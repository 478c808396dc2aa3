package risk

import (
	"math"
	"strconv"

	"RiskFill/internal/domain/models"
)

const (
	BaseScore = 15.0
	MinScore  = 5.0
	MaxScore  = 95.0
)

// input is what every scoring rule sees for one day.
type input struct {
	readings models.Readings
	yc       float64
	hasYC    bool
}

// rule returns the additive adjustment for one indicator, 0 when it does not apply.
type rule struct {
	name  string
	apply func(in input) float64
}

// rules are evaluated in this order. Industrial production and housing starts
// are accepted as readings but have no rule.
var rules = []rule{
	{name: "yield_curve", apply: yieldCurveRule},
	{name: "unemployment", apply: unemploymentRule},
	{name: "initial_claims", apply: claimsRule},
	{name: "gdp_growth", apply: gdpRule},
	{name: "consumer_sentiment", apply: sentimentRule},
	{name: "credit_spread", apply: creditSpreadRule},
}

// Score maps one day of forward-filled readings to a risk score in [5, 95],
// rounded to one decimal place, plus the 10y-2y spread when both yields exist.
func Score(r models.Readings) models.ScoreResult {
	in := input{readings: r}
	y10, ok10 := r.Get(models.Yield10Y)
	y2, ok2 := r.Get(models.Yield2Y)
	if ok10 && ok2 {
		in.yc = y10 - y2
		in.hasYC = true
	}

	score := BaseScore
	for _, rl := range rules {
		score += rl.apply(in)
	}

	res := models.ScoreResult{Risk: roundScore(clamp(score))}
	if in.hasYC {
		yc := in.yc
		res.YieldCurve = &yc
	}
	return res
}

func yieldCurveRule(in input) float64 {
	if !in.hasYC {
		return 0
	}
	switch {
	case in.yc < -0.5:
		return 25
	case in.yc < 0:
		return math.Abs(in.yc) * 30
	case in.yc > 0.5:
		return -5
	}
	return 0
}

func unemploymentRule(in input) float64 {
	u, ok := in.readings.Get(models.Unemployment)
	if !ok {
		return 0
	}
	switch {
	case u > 5.0:
		return (u - 5.0) * 8
	case u < 4.0:
		return -3
	}
	return 0
}

func claimsRule(in input) float64 {
	c, ok := in.readings.Get(models.InitialClaims)
	if !ok || c <= 300000 {
		return 0
	}
	return (c - 300000) / 10000.0
}

func gdpRule(in input) float64 {
	g, ok := in.readings.Get(models.GDPGrowth)
	if !ok {
		return 0
	}
	switch {
	case g < 0:
		return 15
	case g < 2.0:
		return (2.0 - g) * 5
	}
	return 0
}

func sentimentRule(in input) float64 {
	cs, ok := in.readings.Get(models.ConsumerSentiment)
	if !ok {
		return 0
	}
	switch {
	case cs < 70:
		return 10
	case cs < 90:
		return (90 - cs) / 4.0
	}
	return 0
}

func creditSpreadRule(in input) float64 {
	s, ok := in.readings.Get(models.CreditSpread)
	if !ok || s <= 2.5 {
		return 0
	}
	return (s - 2.5) * 8
}

func clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// roundScore rounds the exact binary value of v to one decimal place.
// 19.95 is stored just below the half and rounds to 19.9.
func roundScore(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return f
}
