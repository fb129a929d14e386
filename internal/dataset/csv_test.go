// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"errors"
	"strings"
	"testing"
	"time"

	"recompra/internal/models"
)

func TestParseTransactions(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"usuario,fecha_compra,producto,cantidad,precio,extra",
		"c1,2014-01-05,p1,2,9.99,ignored",
		"c2,2014-01-06 13:45:00,p2,1,4.50,ignored",
	}, "\n")

	records, err := ParseTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTransactions() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ParseTransactions() returned %d records, want 2", len(records))
	}

	want := models.TransactionRecord{
		CustomerID:   "c1",
		PurchaseDate: time.Date(2014, 1, 5, 0, 0, 0, 0, time.UTC),
		ProductID:    "p1",
		Quantity:     2,
		UnitPrice:    9.99,
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}

	// Datetime values are truncated to their calendar day.
	wantDate := time.Date(2014, 1, 6, 0, 0, 0, 0, time.UTC)
	if !records[1].PurchaseDate.Equal(wantDate) {
		t.Errorf("records[1].PurchaseDate = %v, want %v", records[1].PurchaseDate, wantDate)
	}
}

func TestParseTransactionsSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "missing required column",
			input: "usuario,fecha_compra,producto,cantidad\nc1,2014-01-05,p1,2",
		},
		{
			name: "unparseable date",
			input: "usuario,fecha_compra,producto,cantidad,precio\n" +
				"c1,05/01/2014,p1,2,9.99",
		},
		{
			name: "empty customer",
			input: "usuario,fecha_compra,producto,cantidad,precio\n" +
				" ,2014-01-05,p1,2,9.99",
		},
		{
			name: "negative quantity",
			input: "usuario,fecha_compra,producto,cantidad,precio\n" +
				"c1,2014-01-05,p1,-1,9.99",
		},
		{
			name: "non-numeric price",
			input: "usuario,fecha_compra,producto,cantidad,precio\n" +
				"c1,2014-01-05,p1,2,free",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTransactions(strings.NewReader(tt.input))
			if !errors.Is(err, ErrSchema) {
				t.Errorf("ParseTransactions() error = %v, want ErrSchema", err)
			}
		})
	}
}

func TestParseTransactionsNoDataRows(t *testing.T) {
	t.Parallel()

	input := "usuario,fecha_compra,producto,cantidad,precio\n"
	records, err := ParseTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTransactions() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ParseTransactions() returned %d records, want 0", len(records))
	}
}
