package nutrition

import (
	"fmt"
	"strings"
)

// Predicate selects a food record.
type Predicate func(FoodRecord) bool

// NameContains returns a predicate matching records whose name contains the
// given substring, case-insensitively.
func NameContains(substr string) Predicate {
	lower := strings.ToLower(substr)
	return func(r FoodRecord) bool {
		return strings.Contains(strings.ToLower(r.Name), lower)
	}
}

// FindRecord returns the first record satisfying match, or the record at
// fallbackIndex when none does. The positional fallback keeps prompt
// selection deterministic for datasets that lack the preferred item; given
// the same record sequence, the same record is always returned.
func FindRecord(records []FoodRecord, match Predicate, fallbackIndex int) (FoodRecord, error) {
	for _, r := range records {
		if match(r) {
			return r, nil
		}
	}
	if fallbackIndex < 0 || fallbackIndex >= len(records) {
		return FoodRecord{}, &DataSourceError{
			Source: "record lookup",
			Err:    fmt.Errorf("no match and fallback index %d out of range for %d records", fallbackIndex, len(records)),
		}
	}
	return records[fallbackIndex], nil
}
