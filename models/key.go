package models

// OverallMode is the ranking mode that keys records by percentage.
const OverallMode = "Overall"

// Key selects the numeric field records are ranked or binned by: either the
// overall percentage or the score of a single subject. The zero Key is the
// percentage key.
type Key struct {
	Label string
	// subject is the subject index plus one; zero means percentage.
	subject int
}

// PercentageKey keys records by their overall percentage.
func PercentageKey() Key {
	return Key{Label: OverallMode}
}

// SubjectKey keys records by the score at subject index i.
func SubjectKey(name string, i int) Key {
	return Key{Label: name, subject: i + 1}
}

// IsOverall reports whether k keys by percentage.
func (k Key) IsOverall() bool {
	return k.subject == 0
}

// Value extracts the key's value from a record.
func (k Key) Value(r StudentRecord) float64 {
	if k.subject == 0 {
		return r.Percentage
	}
	return r.Scores[k.subject-1]
}
