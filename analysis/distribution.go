package analysis

import (
	"math"

	"github.com/nonsonwune/student_results/models"
)

// DefaultBins is the number of histogram bins.
const DefaultBins = 10

// Distribution splits the observed range [min, max] of key over records into
// bins equal-width bins. Every bin is half-open except the last, which also
// holds max. An empty set (or bins <= 0) gives no bins; a set whose values
// are all equal gives a single [v, v] bin. Non-finite values are not binned.
func Distribution(records []models.StudentRecord, key models.Key, bins int) []models.Bin {
	if bins <= 0 {
		return []models.Bin{}
	}

	values := make([]float64, 0, len(records))
	for _, rec := range records {
		v := key.Value(rec)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return []models.Bin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []models.Bin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
