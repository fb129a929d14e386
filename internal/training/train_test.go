// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package training

import (
	"errors"
	"strings"
	"testing"

	"recompra/internal/models"
)

// stubModel records what Fit receives and replays canned probabilities.
type stubModel struct {
	fitX      [][]float64
	fitY      []int
	posWeight float64
	probs     []float64
	fitErr    error
}

func (s *stubModel) Fit(X [][]float64, y []int, posWeight float64) error {
	s.fitX = X
	s.fitY = y
	s.posWeight = posWeight
	return s.fitErr
}

func (s *stubModel) PredictProbability(X [][]float64) ([]float64, error) {
	if s.probs != nil {
		return s.probs[:len(X)], nil
	}
	probs := make([]float64, len(X))
	return probs, nil
}

// labeledRows builds rows on consecutive days where the first `positives`
// rows are purchases.
func labeledRows(n, positives int) []models.FeatureRow {
	rows := calendarRows(n)
	for i := 0; i < positives; i++ {
		rows[i].Purchased = true
	}
	return rows
}

func TestTrain(t *testing.T) {
	t.Parallel()

	// 10 rows, 80% split: the training head holds 2 positives, 6 negatives.
	rows := labeledRows(10, 2)
	stub := &stubModel{}

	ts, err := Train(stub, rows, 0.8)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if len(stub.fitX) != 8 {
		t.Errorf("Fit received %d rows, want 8", len(stub.fitX))
	}
	if stub.posWeight != 3 {
		t.Errorf("posWeight = %v, want 3 (6 negatives / 2 positives)", stub.posWeight)
	}
	if len(ts.X) != 2 || len(ts.Y) != 2 || len(ts.Rows) != 2 {
		t.Errorf("test set sizes = (%d, %d, %d), want (2, 2, 2)", len(ts.X), len(ts.Y), len(ts.Rows))
	}
}

func TestTrainSingleClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		positives int
	}{
		{name: "all negative", positives: 0},
		{name: "all positive", positives: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Train(&stubModel{}, labeledRows(10, tt.positives), 0.8)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Train() error = %v, want ErrInsufficientData", err)
			}
		})
	}
}

func TestTrainFitError(t *testing.T) {
	t.Parallel()

	stub := &stubModel{fitErr: errors.New("boom")}
	if _, err := Train(stub, labeledRows(10, 2), 0.8); err == nil {
		t.Error("Train() error = nil, want fit error")
	}
}

func TestEvaluatePerfectModel(t *testing.T) {
	t.Parallel()

	rows := []models.FeatureRow{
		{Date: day(2014, 1, 1), Purchased: true},
		{Date: day(2014, 1, 2)},
		{Date: day(2014, 1, 3), Purchased: true},
		{Date: day(2014, 1, 4)},
	}
	X, y := matrices(rows)
	ts := &TestSet{X: X, Y: y, Rows: rows}

	// Confident and correct on every row.
	stub := &stubModel{probs: []float64{0.9, 0.1, 0.8, 0.2}}

	report, auc, err := Evaluate(stub, ts)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if auc != 1 {
		t.Errorf("AUC = %v, want 1", auc)
	}
	for _, want := range []string{"precision", "recall", "f1-score", "support", "accuracy"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestEvaluateSingleClassTestSet(t *testing.T) {
	t.Parallel()

	rows := []models.FeatureRow{
		{Date: day(2014, 1, 1)},
		{Date: day(2014, 1, 2)},
	}
	X, y := matrices(rows)
	ts := &TestSet{X: X, Y: y, Rows: rows}

	_, _, err := Evaluate(&stubModel{probs: []float64{0.1, 0.2}}, ts)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Evaluate() error = %v, want ErrInsufficientData", err)
	}
}

func TestRocAUC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		probs  []float64
		labels []int
		want   float64
	}{
		{
			name:   "perfect separation",
			probs:  []float64{0.1, 0.2, 0.8, 0.9},
			labels: []int{0, 0, 1, 1},
			want:   1,
		},
		{
			name:   "inverted ranking",
			probs:  []float64{0.9, 0.8, 0.2, 0.1},
			labels: []int{0, 0, 1, 1},
			want:   0,
		},
		{
			name:   "all tied is chance",
			probs:  []float64{0.5, 0.5, 0.5, 0.5},
			labels: []int{0, 1, 0, 1},
			want:   0.5,
		},
		{
			name:   "one misranked pair",
			probs:  []float64{0.1, 0.7, 0.6, 0.9},
			labels: []int{0, 0, 1, 1},
			want:   0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rocAUC(tt.probs, tt.labels)
			if err != nil {
				t.Fatalf("rocAUC() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("rocAUC() = %v, want %v", got, tt.want)
			}
		})
	}
}
