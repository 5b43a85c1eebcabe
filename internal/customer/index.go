// Package customer derives the customer list of a dataset and answers
// search and selection queries against it.
package customer

import (
	"sort"
	"strings"

	"fjacquet/shipsort/internal/models"
	"fjacquet/shipsort/internal/parsererror"
)

// Entry is one customer label with the number of records carrying it.
type Entry struct {
	Label string
	Count int
}

// Index is the sorted set of distinct customer labels of a dataset.
// It is immutable once built.
type Index struct {
	labels []string
	counts map[string]int
	err    error
}

// BuildIndex collects the trimmed, non-blank values of the role column.
// Labels are case-sensitive: "Acme" and "acme" are different customers.
// An unresolved role yields an empty index whose Err reports why.
func BuildIndex(ds *models.Dataset, role models.ColumnRole) *Index {
	idx := &Index{counts: map[string]int{}}
	if !role.Resolved() {
		idx.err = parsererror.ErrUnresolvedColumnRole
		return idx
	}
	if ds == nil {
		return idx
	}

	for _, rec := range ds.Records {
		label := role.Value(rec)
		if label == "" {
			continue
		}
		if idx.counts[label] == 0 {
			idx.labels = append(idx.labels, label)
		}
		idx.counts[label]++
	}
	sort.Strings(idx.labels)

	return idx
}

// Labels returns the labels in ascending byte order. The slice is a copy.
func (i *Index) Labels() []string {
	out := make([]string, len(i.labels))
	copy(out, i.labels)
	return out
}

// Len returns the number of distinct labels.
func (i *Index) Len() int {
	return len(i.labels)
}

// Contains reports whether label is in the index. label is trimmed first.
func (i *Index) Contains(label string) bool {
	return i.counts[strings.TrimSpace(label)] > 0
}

// Count returns the number of records whose customer equals label.
func (i *Index) Count(label string) int {
	return i.counts[strings.TrimSpace(label)]
}

// Entries returns label and count pairs in label order.
func (i *Index) Entries() []Entry {
	out := make([]Entry, 0, len(i.labels))
	for _, l := range i.labels {
		out = append(out, Entry{Label: l, Count: i.counts[l]})
	}
	return out
}

// Err returns parsererror.ErrUnresolvedColumnRole when the dataset had no
// customer column, nil otherwise.
func (i *Index) Err() error {
	return i.err
}
