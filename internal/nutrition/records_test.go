package nutrition

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvFS(content string) fstest.MapFS {
	return fstest.MapFS{
		"foods.csv": &fstest.MapFile{Data: []byte(content)},
	}
}

func TestParseRecords(t *testing.T) {
	fsys := csvFS(`name,brand_name,classification,energy,fat,netCarbs,protein
"Apple, Fresh, Medium",Generic,Fruit,378,0.1,19.8,1.7
Cheddar Cheese,Dairyco,Dairy,1686,33.1,1.3,24.9
`)

	records, err := ParseRecords(fsys, "foods.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)

	apple := records[0]
	assert.Equal(t, "Apple, Fresh, Medium", apple.Name)
	assert.Equal(t, "Generic", apple.Brand)
	assert.Equal(t, "Fruit", apple.Category)
	assert.Equal(t, 378.0, apple.Nutrients.Value(Energy))
	assert.Equal(t, 0.1, apple.Nutrients.Value(Fat))

	assert.Equal(t, "Cheddar Cheese", records[1].Name)
	assert.Equal(t, 24.9, records[1].Nutrients.Value(Protein))
}

func TestParseRecordsSparseCells(t *testing.T) {
	fsys := csvFS(`name,energy,fat,sodium
Mystery Food,,not-a-number,
`)

	records, err := ParseRecords(fsys, "foods.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Empty and unparsable cells read as 0.
	assert.Equal(t, 0.0, records[0].Nutrients.Value(Energy))
	assert.Equal(t, 0.0, records[0].Nutrients.Value(Fat))
	assert.Equal(t, 0.0, records[0].Nutrients.Value(Sodium))
}

func TestParseRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing name column",
			csv:  "brand_name,energy\nGeneric,100\n",
		},
		{
			name: "header only",
			csv:  "name,energy\n",
		},
		{
			name: "empty file",
			csv:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecords(csvFS(tt.csv), "foods.csv")
			require.Error(t, err)

			var srcErr *DataSourceError
			assert.True(t, errors.As(err, &srcErr))
		})
	}
}

func TestParseRecordsMissingFile(t *testing.T) {
	_, err := ParseRecords(fstest.MapFS{}, "foods.csv")
	require.Error(t, err)

	var srcErr *DataSourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "foods.csv", srcErr.Source)
}

func TestFindRecord(t *testing.T) {
	records := []FoodRecord{
		{Name: "Apple, Fresh, Medium"},
		{Name: "Cheesecake, Classic, 1 Slice"},
		{Name: "Chocolate Bar, Milk, 45g"},
	}

	r, err := FindRecord(records, NameContains("cheese"), 0)
	require.NoError(t, err)
	assert.Equal(t, "Cheesecake, Classic, 1 Slice", r.Name)

	// Matching is case-insensitive.
	r, err = FindRecord(records, NameContains("APPLE"), 0)
	require.NoError(t, err)
	assert.Equal(t, "Apple, Fresh, Medium", r.Name)
}

func TestFindRecordFallback(t *testing.T) {
	records := []FoodRecord{
		{Name: "Banana"},
		{Name: "Carrot"},
	}

	r, err := FindRecord(records, NameContains("apple"), 1)
	require.NoError(t, err)
	assert.Equal(t, "Carrot", r.Name)
}

func TestFindRecordFallbackOutOfRange(t *testing.T) {
	records := []FoodRecord{{Name: "Banana"}}

	_, err := FindRecord(records, NameContains("apple"), 3)
	require.Error(t, err)

	var srcErr *DataSourceError
	assert.True(t, errors.As(err, &srcErr))
}
