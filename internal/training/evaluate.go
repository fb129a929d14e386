// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package training

import (
	"fmt"
	"sort"
	"strings"

	"recompra/internal/classifier"
)

// Evaluate scores the model on a held-out test set. It returns a per-class
// classification report (precision, recall, F1, support, plus accuracy) and
// the ROC AUC of the predicted probabilities.
//
// AUC is undefined when the test set contains a single class; that is an
// error, not a silent zero.
func Evaluate(m classifier.Model, ts *TestSet) (report string, auc float64, err error) {
	probs, err := m.PredictProbability(ts.X)
	if err != nil {
		return "", 0, fmt.Errorf("failed to score test set: %w", err)
	}

	preds := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			preds[i] = 1
		}
	}

	auc, err = rocAUC(probs, ts.Y)
	if err != nil {
		return "", 0, err
	}
	return classificationReport(ts.Y, preds), auc, nil
}

// classificationReport formats per-class precision/recall/F1/support.
func classificationReport(actual, predicted []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")

	correct := 0
	for _, class := range []int{0, 1} {
		var tp, fp, fn, support int
		for i, a := range actual {
			p := predicted[i]
			if a == class {
				support++
				if p == class {
					tp++
				} else {
					fn++
				}
			} else if p == class {
				fp++
			}
		}

		precision := ratio(tp, tp+fp)
		recall := ratio(tp, tp+fn)
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		fmt.Fprintf(&b, "%12d %10.4f %10.4f %10.4f %10d\n", class, precision, recall, f1, support)
	}

	for i, a := range actual {
		if predicted[i] == a {
			correct++
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%12s %10s %10s %10.4f %10d\n", "accuracy", "", "",
		ratio(correct, len(actual)), len(actual))
	return b.String()
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// rocAUC computes the area under the ROC curve using the Mann-Whitney rank
// formulation; tied probabilities receive their average rank.
func rocAUC(probs []float64, labels []int) (float64, error) {
	type scored struct {
		prob  float64
		label int
	}
	rows := make([]scored, len(probs))
	for i := range probs {
		rows[i] = scored{prob: probs[i], label: labels[i]}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].prob < rows[j].prob })

	var positives, negatives int
	var rankSum float64
	i := 0
	for i < len(rows) {
		j := i
		for j < len(rows) && rows[j].prob == rows[i].prob {
			j++
		}
		// Ranks are 1-based; every row in a tie group gets the group mean.
		avgRank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if rows[k].label == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}
	for _, r := range rows {
		if r.label == 1 {
			positives++
		} else {
			negatives++
		}
	}

	if positives == 0 || negatives == 0 {
		return 0, fmt.Errorf("%w: AUC undefined on a single-class test set", ErrInsufficientData)
	}

	nPos := float64(positives)
	nNeg := float64(negatives)
	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg), nil
}
