package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
)

// LabeledScore pairs a model score with its binary ground-truth label.
type LabeledScore struct {
	Score float64
	Label bool
}

// SortLabeledScores returns the permutation that orders entries by score
// descending.
//
// The sort is stable: entries with equal scores keep their input order, so
// the result is deterministic. Curve builders never rely on that order
// within a tie, though; they treat every entry sharing a score as crossing
// the threshold at the same time.
//
// Errors:
//   - ErrInvalidInput: if entries is empty or any score is NaN
//
// Example:
//
//	order, err := metrics.SortLabeledScores([]metrics.LabeledScore{
//	    {Score: 0.2, Label: false},
//	    {Score: 0.9, Label: true},
//	})
//	// order == []int{1, 0}
func SortLabeledScores(entries []LabeledScore) ([]int, error) {
	return sortLabeledScores("SortLabeledScores", entries)
}

func sortLabeledScores(op string, entries []LabeledScore) ([]int, error) {
	if len(entries) == 0 {
		return nil, scigoErrors.NewEmptyDataError(op)
	}
	for i, e := range entries {
		if math.IsNaN(e.Score) {
			return nil, scigoErrors.NewValueError(op, fmt.Sprintf("score at index %d is NaN", i))
		}
	}

	// Ascending stable sort of negated scores is a descending stable sort.
	keys := make([]float64, len(entries))
	for i, e := range entries {
		keys[i] = -e.Score
	}
	order := make([]int, len(entries))
	floats.ArgsortStable(keys, order)

	return order, nil
}

// thresholdGroup holds the cumulative confusion counts once every sample
// scoring >= threshold is predicted positive.
type thresholdGroup struct {
	threshold float64
	tp        int
	fp        int
}

// thresholdGroups validates the paired inputs, sorts them, and collapses
// equal scores into one group each. Groups are ordered by threshold
// descending; the last group always covers all samples.
func thresholdGroups(op string, scores []float64, labels []bool) (groups []thresholdGroup, positives, negatives int, err error) {
	if len(scores) != len(labels) {
		return nil, 0, 0, scigoErrors.NewDimensionError(op, len(labels), len(scores), 0)
	}

	entries := make([]LabeledScore, len(scores))
	for i := range scores {
		entries[i] = LabeledScore{Score: scores[i], Label: labels[i]}
	}

	order, err := sortLabeledScores(op, entries)
	if err != nil {
		return nil, 0, 0, err
	}

	var tp, fp int
	for i, idx := range order {
		e := entries[idx]
		if e.Label {
			tp++
		} else {
			fp++
		}

		// Close the group once the next score differs.
		if i+1 < len(order) && entries[order[i+1]].Score == e.Score {
			continue
		}
		groups = append(groups, thresholdGroup{threshold: e.Score, tp: tp, fp: fp})
	}

	return groups, tp, fp, nil
}
