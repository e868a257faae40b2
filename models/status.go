package models

// Status is the Pass/Fail label derived from the result flag
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// AllStatuses lists every status in display order.
func AllStatuses() []Status {
	return []Status{StatusPass, StatusFail}
}

// StatusFromResult maps a raw result flag onto a status. Any non-zero flag
// passes; an undefined flag fails.
func StatusFromResult(flag float64) Status {
	if flag != 0 && !IsUndefined(flag) {
		return StatusPass
	}
	return StatusFail
}
