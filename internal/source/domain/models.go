package domain

import (
	"context"
	"strings"
)

// Record is one raw export row, field name to raw value. Absent
// optional fields are simply missing keys.
type Record map[string]string

// Get returns the trimmed value for key, or "" when absent.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Reader yields the records of one export file. The int result counts
// malformed rows that were skipped; a skipped row never fails the read.
type Reader interface {
	Read(ctx context.Context) ([]Record, int, error)
}
