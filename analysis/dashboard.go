package analysis

import (
	"github.com/go-playground/validator/v10"

	"github.com/nonsonwune/student_results/models"
)

// Params are the user-adjustable inputs of one recomputation pass
type Params struct {
	Low           float64         `json:"low" validate:"gte=0,lte=100"`
	High          float64         `json:"high" validate:"gte=0,lte=100,gtefield=Low"`
	Statuses      []models.Status `json:"statuses" validate:"dive,oneof=Pass Fail"`
	Mode          string          `json:"mode"`
	TopN          int             `json:"top_n" validate:"gte=0"`
	Bins          int             `json:"bins" validate:"gte=0"`
	PassThreshold float64         `json:"pass_threshold"`
}

// DefaultParams covers the full percentage range, both statuses and the
// overall ranking mode.
func DefaultParams() Params {
	return Params{
		Low:           0,
		High:          100,
		Statuses:      models.AllStatuses(),
		Mode:          models.OverallMode,
		TopN:          DefaultTopN,
		Bins:          DefaultBins,
		PassThreshold: DefaultPassThreshold,
	}
}

// Validate checks the bounds a caller must respect (0 <= Low <= High <= 100,
// known statuses). Build itself does not call it.
func (p Params) Validate() error {
	return validator.New().Struct(p)
}

// Dashboard is everything one recomputation pass produces
type Dashboard struct {
	Params     Params
	Subjects   []string
	Subset     []models.StudentRecord
	Summary    models.Summary
	Difficulty []models.SubjectDifficultyStat // subject order
	Hardest    []models.SubjectDifficultyStat // hardest first
	RankKey    models.Key
	Top        []models.StudentRecord
	Bottom     []models.StudentRecord
	Histogram  []models.Bin // percentage distribution
}

// Build runs filter, summary, subject difficulty, ranking and distribution
// over table in one pass. The table is only read. The only error is
// ErrUnknownMode.
func Build(table *models.Table, p Params) (*Dashboard, error) {
	key, err := ResolveKey(table.Subjects, p.Mode)
	if err != nil {
		return nil, err
	}

	subset := Filter(table.Records, p.Low, p.High, p.Statuses)
	difficulty := SubjectDifficulty(subset, table.Subjects, p.PassThreshold)
	top, bottom := Rank(subset, key, p.TopN)

	return &Dashboard{
		Params:     p,
		Subjects:   table.Subjects,
		Subset:     subset,
		Summary:    Summarize(subset),
		Difficulty: difficulty,
		Hardest:    SortByDifficulty(difficulty),
		RankKey:    key,
		Top:        top,
		Bottom:     bottom,
		Histogram:  Distribution(subset, models.PercentageKey(), p.Bins),
	}, nil
}
