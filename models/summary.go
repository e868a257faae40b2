package models

import "math"

// Summary holds the headline counts for a record set
type Summary struct {
	Count          int     `json:"count"`
	MeanPercentage float64 `json:"mean_percentage"`
	PassCount      int     `json:"pass_count"`
	FailCount      int     `json:"fail_count"`
}

// Undefined is the value reported where a statistic has no meaning, such as
// the mean of an empty set.
func Undefined() float64 {
	return math.NaN()
}

// IsUndefined reports whether f is the Undefined sentinel.
func IsUndefined(f float64) bool {
	return math.IsNaN(f)
}
