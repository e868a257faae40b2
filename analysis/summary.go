package analysis

import "github.com/nonsonwune/student_results/models"

// Summarize counts the records by status and averages their percentage.
// MeanPercentage is models.Undefined() for an empty set.
func Summarize(records []models.StudentRecord) models.Summary {
	summary := models.Summary{
		Count:          len(records),
		MeanPercentage: mean(records, models.PercentageKey()),
	}
	for _, rec := range records {
		switch rec.Status {
		case models.StatusPass:
			summary.PassCount++
		case models.StatusFail:
			summary.FailCount++
		}
	}
	return summary
}

func mean(records []models.StudentRecord, key models.Key) float64 {
	if len(records) == 0 {
		return models.Undefined()
	}
	var sum float64
	for _, rec := range records {
		sum += key.Value(rec)
	}
	return sum / float64(len(records))
}
