package customer

import (
	"strings"

	"fjacquet/shipsort/internal/models"
)

// Select returns the records whose customer cell, trimmed, equals label
// exactly, in dataset order. Matching is case-sensitive so that a label
// taken from the Index selects exactly Index.Count(label) records.
func Select(ds *models.Dataset, role models.ColumnRole, label string) []models.Record {
	label = strings.TrimSpace(label)
	if ds == nil || !role.Resolved() || label == "" {
		return []models.Record{}
	}

	out := make([]models.Record, 0)
	for _, rec := range ds.Records {
		if role.Value(rec) == label {
			out = append(out, rec)
		}
	}
	return out
}
