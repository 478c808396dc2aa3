package risk

import (
	"time"

	"RiskFill/internal/domain/models"
)

// Cursor carries the last observed value of one series forward in time.
// Queries must use non-decreasing dates; the cursor never rewinds.
type Cursor struct {
	obs     []models.Observation
	next    int
	current float64
	has     bool
}

// NewCursor creates a cursor over obs, which must be sorted ascending by date.
func NewCursor(obs []models.Observation) *Cursor {
	return &Cursor{obs: obs}
}

// ValueAsOf returns the value of the latest observation dated on or before date.
// ok is false while no such observation exists.
func (c *Cursor) ValueAsOf(date time.Time) (value float64, ok bool) {
	for c.next < len(c.obs) && !c.obs[c.next].Date.After(date) {
		c.current = c.obs[c.next].Value
		c.has = true
		c.next++
	}
	return c.current, c.has
}
