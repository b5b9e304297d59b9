package roster

import (
	"github.com/clinicops/roster/internal/schema"
)

// ColumnMapping maps a file's original header strings to canonical field
// keys. It is computed once per file from the header line and discarded when
// the import call returns.
type ColumnMapping map[string]schema.FieldKey

// MapHeaders reconciles a raw header row against the schema's header
// dictionary. Headers with no dictionary match are omitted from the mapping
// rather than reported as errors, so files may carry extra columns.
//
// MapHeaders is total: any header list, including an empty one, produces a
// mapping (possibly empty, in which case every row fails validation later).
func MapHeaders(headers []string) ColumnMapping {
	mapping := make(ColumnMapping, len(headers))
	for _, h := range headers {
		key, ok := schema.Lookup(CleanCell(h))
		if !ok {
			continue
		}
		mapping[h] = key
	}
	return mapping
}
