package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nonsonwune/student_results/models"
)

// DefaultTopN is how many records each ranked slice holds.
const DefaultTopN = 5

// ErrUnknownMode is returned for a ranking mode that is neither "Overall" nor a subject.
var ErrUnknownMode = errors.New("unknown ranking mode")

// ResolveKey maps a ranking mode onto a key. "Overall" (or an empty mode)
// keys by percentage; a subject name keys by that subject's score.
func ResolveKey(subjects []string, mode string) (models.Key, error) {
	if mode == "" || mode == models.OverallMode {
		return models.PercentageKey(), nil
	}
	for i, s := range subjects {
		if s == mode {
			return models.SubjectKey(s, i), nil
		}
	}
	return models.Key{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
}

// Modes lists every ranking mode: "Overall" followed by the subjects.
func Modes(subjects []string) []string {
	return append([]string{models.OverallMode}, subjects...)
}

// Rank returns the n records with the highest key value, descending, and the
// n with the lowest, ascending. Equal values keep their input order in both
// slices. Fewer than n records yields all of them; nothing is padded.
func Rank(records []models.StudentRecord, key models.Key, n int) (top, bottom []models.StudentRecord) {
	k := max(0, min(n, len(records)))
	top = sortedBy(records, key, true)[:k:k]
	bottom = sortedBy(records, key, false)[:k:k]
	return top, bottom
}

func sortedBy(records []models.StudentRecord, key models.Key, desc bool) []models.StudentRecord {
	sorted := append([]models.StudentRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compare(key.Value(sorted[i]), key.Value(sorted[j]), desc) < 0
	})
	return sorted
}
