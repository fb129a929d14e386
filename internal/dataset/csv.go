// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"recompra/internal/models"
)

// requiredColumns are the input columns the transaction log must carry.
var requiredColumns = []string{
	models.ColCustomer,
	models.ColDate,
	models.ColProduct,
	models.ColQuantity,
	models.ColPrice,
}

// dateLayouts are the accepted purchase-date formats. Datetime values are
// truncated to their calendar day.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseTransactions decodes the delimited transaction log. The first row
// must be a header containing every required column; extra columns are
// ignored. Any missing column or unparseable value fails immediately with an
// error wrapping ErrSchema.
func ParseTransactions(r io.Reader) ([]models.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrSchema, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: required column %q not found", ErrSchema, col)
		}
	}

	var records []models.TransactionRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSchema, line, err)
		}

		rec, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// parseRow converts one CSV row into a TransactionRecord.
func parseRow(row []string, index map[string]int, line int) (models.TransactionRecord, error) {
	var rec models.TransactionRecord

	rec.CustomerID = strings.TrimSpace(row[index[models.ColCustomer]])
	if rec.CustomerID == "" {
		return rec, fmt.Errorf("%w: line %d: empty %s", ErrSchema, line, models.ColCustomer)
	}

	date, err := parseDate(row[index[models.ColDate]])
	if err != nil {
		return rec, fmt.Errorf("%w: line %d: column %s: %v", ErrSchema, line, models.ColDate, err)
	}
	rec.PurchaseDate = date

	rec.ProductID = strings.TrimSpace(row[index[models.ColProduct]])

	qty, err := strconv.Atoi(strings.TrimSpace(row[index[models.ColQuantity]]))
	if err != nil || qty < 0 {
		return rec, fmt.Errorf("%w: line %d: column %s: not a non-negative integer: %q",
			ErrSchema, line, models.ColQuantity, row[index[models.ColQuantity]])
	}
	rec.Quantity = qty

	price, err := strconv.ParseFloat(strings.TrimSpace(row[index[models.ColPrice]]), 64)
	if err != nil || price < 0 {
		return rec, fmt.Errorf("%w: line %d: column %s: not a non-negative number: %q",
			ErrSchema, line, models.ColPrice, row[index[models.ColPrice]])
	}
	rec.UnitPrice = price

	return rec, nil
}

// parseDate parses a purchase date and truncates it to its calendar day.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
