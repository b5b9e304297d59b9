package roster

// export.go flattens canonical records back into delimited rows.
//
// The export header order is fixed by schema.ExportHeaders regardless of how
// any imported file was laid out, and is a strict superset of the
// import-accepted set: identity fields and the derived age are included.
// Feeding an export back through the importer reproduces every non-identity,
// non-derived value; identity is re-assigned and age recomputed.

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/clinicops/roster/internal/schema"
)

// ExportRow flattens a record into cell values in schema.ExportHeaders
// order. Missing optional values render as empty strings, never a literal
// "null" or "undefined".
func ExportRow(rec *Record) []string {
	row := make([]string, len(schema.ExportHeaders))
	for i, header := range schema.ExportHeaders {
		key, ok := schema.Lookup(header)
		if !ok {
			continue
		}
		row[i] = rec.Value(key)
	}
	return row
}

// ExportCSV writes the canonical header line followed by one row per record.
// Record order is preserved as given; filtering is the caller's concern.
func ExportCSV(w io.Writer, recs []*Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(schema.ExportHeaders); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, rec := range recs {
		if err := cw.Write(ExportRow(rec)); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
