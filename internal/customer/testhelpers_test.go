package customer

import (
	"testing"

	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/schema"

	"github.com/stretchr/testify/require"
)

// dataset builds a normalized dataset from rows, header first.
func dataset(t *testing.T, rows ...[]string) *models.Dataset {
	t.Helper()
	ds, err := schema.Normalize(rows)
	require.NoError(t, err)
	return ds
}

func roleAt(ds *models.Dataset, field string) models.ColumnRole {
	for i, f := range ds.Fields {
		if f == field {
			return models.ColumnRole{Field: f, Index: i, Rule: "test", Confidence: 1}
		}
	}
	return models.Unresolved
}
