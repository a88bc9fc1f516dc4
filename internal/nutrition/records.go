package nutrition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

// Column names that are not nutrient values.
const (
	colName           = "name"
	colBrand          = "brand_name"
	colClassification = "classification"
)

// ParseRecords reads food records from a CSV file within fsys. The file must
// have a header row with at least a "name" column; "brand_name" and
// "classification" are recognized metadata columns, and every other column
// is treated as a nutrient. Empty or unparsable cells yield 0.0, never an
// error -- the source data is sparse by nature.
func ParseRecords(fsys fs.FS, filename string) ([]FoodRecord, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, &DataSourceError{Source: filename, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts.

	header, err := reader.Read()
	if err != nil {
		return nil, &DataSourceError{Source: filename, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	if _, ok := colIndex[colName]; !ok {
		return nil, &DataSourceError{Source: filename, Err: fmt.Errorf("missing required CSV column: %s", colName)}
	}

	var records []FoodRecord
	for lineNum := 2; ; lineNum++ { // lineNum starts at 2 (1-indexed, after header).
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataSourceError{Source: filename, Err: fmt.Errorf("failed to read CSV row %d: %w", lineNum, err)}
		}

		record := FoodRecord{Nutrients: make(NutrientProfile)}
		for col, idx := range colIndex {
			if idx >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[idx])
			switch col {
			case colName:
				record.Name = cell
			case colBrand:
				record.Brand = cell
			case colClassification:
				record.Category = cell
			default:
				record.Nutrients[col] = parseAmount(cell)
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &DataSourceError{Source: filename, Err: fmt.Errorf("no food records found")}
	}
	return records, nil
}

// parseAmount converts a CSV cell to a nutrient amount. Anything that does
// not parse as a number reads as 0.
func parseAmount(cell string) float64 {
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}
