package models

// StudentRecord represents one row of the results roster with its derived fields
type StudentRecord struct {
	StudentID  int       `db:"student_id" json:"student_id"`
	Scores     []float64 `db:"-" json:"scores"`
	Result     float64   `db:"result" json:"result"`
	TotalMarks float64   `db:"total_marks" json:"total_marks"`
	Percentage float64   `db:"percentage" json:"percentage"`
	Status     Status    `db:"status" json:"status"`
}

// Complete reports whether every configured cell of the row held a number.
// Incomplete records have an undefined TotalMarks and Percentage.
func (r StudentRecord) Complete() bool {
	return !IsUndefined(r.Percentage)
}
