package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugifyDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		database string
		want     string
	}{
		{"simple", "sales", "sales"},
		{"mixed case and symbols", "My Prod DB!!", "my-prod-db"},
		{"collapses runs", "a  --  b", "a-b"},
		{"trims hyphens", "--warehouse--", "warehouse"},
		{"empty", "", "database"},
		{"whitespace only", "   ", "database"},
		{"symbols only", "!!!", "database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SlugifyDatabaseName(tt.database))
		})
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-5, 0, 100))
	require.Equal(t, 100.0, Clamp(150, 0, 100))
	require.Equal(t, 42.5, Clamp(42.5, 0, 100))
}

func TestContains(t *testing.T) {
	require.True(t, Contains([]string{"high", "medium", "low"}, "medium"))
	require.False(t, Contains([]string{"high", "medium", "low"}, "urgent"))
	require.False(t, Contains(nil, "high"))
}
