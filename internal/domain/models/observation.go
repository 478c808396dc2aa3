package models

import "time"

// Observation is a single dated reading of one series.
// Date is always a UTC midnight.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Readings holds the forward-filled indicator values for one day.
// A missing key means the indicator has no value yet.
type Readings map[Indicator]float64

// Get returns the value for ind and whether it is present.
func (r Readings) Get(ind Indicator) (float64, bool) {
	v, ok := r[ind]
	return v, ok
}
