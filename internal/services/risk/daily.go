package risk

import (
	"errors"
	"fmt"
	"time"

	"RiskFill/internal/domain/models"
	"RiskFill/pkg/util"
)

var ErrInvalidRange = errors.New("start date is after end date")

// BuildDaily scores every calendar day in [start, end] using forward-filled
// values from series. Indicators with no series simply stay absent.
func BuildDaily(start, end time.Time, series map[models.Indicator][]models.Observation) ([]models.DailyRisk, error) {
	start, end = util.TruncateDay(start), util.TruncateDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("build daily %s..%s: %w", util.FormatDate(start), util.FormatDate(end), ErrInvalidRange)
	}

	cursors := make(map[models.Indicator]*Cursor, len(series))
	for ind, obs := range series {
		cursors[ind] = NewCursor(obs)
	}

	out := make([]models.DailyRisk, 0, util.DaysInclusive(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		readings := make(models.Readings, len(cursors))
		for ind, c := range cursors {
			if v, ok := c.ValueAsOf(d); ok {
				readings[ind] = v
			}
		}
		res := Score(readings)
		out = append(out, models.DailyRisk{Date: d, Risk: res.Risk, YieldCurve: res.YieldCurve})
	}
	return out, nil
}
