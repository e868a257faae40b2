package analysis

import "github.com/nonsonwune/student_results/models"

// Filter returns, in input order, the records whose percentage lies in
// [lo, hi] and whose status is one of statuses. The bounds are used as given;
// an empty status set matches nothing, and an undefined percentage lies in no
// range. The input is never modified.
func Filter(records []models.StudentRecord, lo, hi float64, statuses []models.Status) []models.StudentRecord {
	allowed := make(map[models.Status]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	out := make([]models.StudentRecord, 0, len(records))
	for _, rec := range records {
		if !(rec.Percentage >= lo && rec.Percentage <= hi) {
			continue
		}
		if !allowed[rec.Status] {
			continue
		}
		out = append(out, rec)
	}
	return out
}
