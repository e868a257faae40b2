package models

// SubjectDifficultyStat represents the aggregate difficulty of one subject over a record set
type SubjectDifficultyStat struct {
	Subject   string  `json:"subject"`
	AvgMarks  float64 `json:"avg_marks"`
	FailCount int     `json:"fail_count"`
	PassCount int     `json:"pass_count"`
	FailRate  float64 `json:"fail_rate"`
}
