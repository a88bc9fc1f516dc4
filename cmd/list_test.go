package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmdShowsCatalogIdentifier(t *testing.T) {
	cmd := newListCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	// The directory identifier (what 'run' takes) appears alongside the
	// display name from the catalog config.
	assert.Contains(t, out.String(), "- calorieking-v1")
	assert.Contains(t, out.String(), "Name: CalorieKing Nutrition Knowledge")
	assert.Contains(t, out.String(), "Records: 10")
}
