package models

// Table is the loaded roster: the ordered subject list and every derived
// record. It is shared read-only once loaded.
type Table struct {
	Subjects []string        `json:"subjects"`
	Records  []StudentRecord `json:"records"`
}

// IncompleteCount returns how many records are not Complete.
func (t *Table) IncompleteCount() int {
	n := 0
	for _, rec := range t.Records {
		if !rec.Complete() {
			n++
		}
	}
	return n
}

// SubjectIndex returns the position of name in the subject list.
func (t *Table) SubjectIndex(name string) (int, bool) {
	for i, s := range t.Subjects {
		if s == name {
			return i, true
		}
	}
	return -1, false
}
