package analysis

import (
	"math"
	"sort"

	"github.com/nonsonwune/student_results/models"
)

// DefaultPassThreshold is the per-subject score a student needs to pass it.
const DefaultPassThreshold = 40

// SubjectDifficulty builds one stat per subject, in subject order. A score
// below passThreshold counts as a fail. AvgMarks and FailRate are
// models.Undefined() when records is empty.
func SubjectDifficulty(records []models.StudentRecord, subjects []string, passThreshold float64) []models.SubjectDifficultyStat {
	stats := make([]models.SubjectDifficultyStat, len(subjects))
	for i, subject := range subjects {
		key := models.SubjectKey(subject, i)
		stat := models.SubjectDifficultyStat{
			Subject:  subject,
			AvgMarks: mean(records, key),
		}
		for _, rec := range records {
			if key.Value(rec) < passThreshold {
				stat.FailCount++
			} else {
				stat.PassCount++
			}
		}
		stat.FailRate = failRate(stat.FailCount, stat.PassCount)
		stats[i] = stat
	}
	return stats
}

func failRate(fail, pass int) float64 {
	if fail+pass == 0 {
		return models.Undefined()
	}
	return float64(fail) / float64(fail+pass) * 100
}

// SortByDifficulty returns a copy of stats ordered hardest first: ascending
// average marks, then descending fail rate. Undefined values sort last and
// remaining ties keep their input order.
func SortByDifficulty(stats []models.SubjectDifficultyStat) []models.SubjectDifficultyStat {
	sorted := append([]models.SubjectDifficultyStat(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := compare(a.AvgMarks, b.AvgMarks, false); c != 0 {
			return c < 0
		}
		return compare(a.FailRate, b.FailRate, true) < 0
	})
	return sorted
}

// compare orders a and b ascending, or descending when desc is set. NaN
// sorts after every number either way.
func compare(a, b float64, desc bool) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if desc {
		a, b = b, a
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
