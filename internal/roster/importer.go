package roster

// importer.go orchestrates a bulk roster import: header mapping once, then a
// strictly sequential pass over the data rows. Each row is independently
// coerced, validated, and persisted; a row's failure is recorded in the
// report and never aborts the batch or touches any other row.
//
// The sequential await-per-row loop is intentional, not an accident to
// parallelize away: it bounds load on the persistence collaborator, keeps
// the report's row ordering deterministic, and keeps failure attribution
// unambiguous.

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/clinicops/roster/internal/schema"
)

// Operation-fatal conditions. These abort the batch before any row is
// attempted; everything per-row becomes a report entry instead.
var (
	// ErrNoActor means no acting user id was supplied for stamping.
	ErrNoActor = errors.New("no acting user for import")

	// ErrNoHeader means the file had no parsable header line.
	ErrNoHeader = errors.New("file has no header line")
)

// Creator is the persistence collaborator. Create persists a canonical
// record and returns the newly assigned identifier. Errors are opaque text,
// inspected only for a duplicate/uniqueness marker.
type Creator interface {
	Create(ctx context.Context, rec *Record, actorID string) (string, error)
}

// Outcome is the tagged per-row result of an import.
type Outcome struct {
	// Row is the 1-based position of the data row in the source file,
	// excluding the header line.
	Row     int    `json:"row"`
	Created bool   `json:"created"`
	ID      string `json:"id,omitempty"`
	Reason  string `json:"reason,omitempty"`

	// Duplicate marks a persistence rejection whose error text carried a
	// duplicate/uniqueness marker, so callers can present a more specific
	// message.
	Duplicate bool `json:"duplicate,omitempty"`
}

// Report is the aggregate result of one import call. It is built
// incrementally during the call and handed to the caller; it is never
// persisted and has no identity beyond the call.
type Report struct {
	Rows     int       `json:"rows"`
	Created  int       `json:"created"`
	Rejected int       `json:"rejected"`
	Outcomes []Outcome `json:"outcomes"`
}

func (r *Report) created(row int, id string) {
	r.Created++
	r.Outcomes = append(r.Outcomes, Outcome{Row: row, Created: true, ID: id})
}

func (r *Report) rejected(row int, reason string, duplicate bool) {
	r.Rejected++
	r.Outcomes = append(r.Outcomes, Outcome{Row: row, Reason: reason, Duplicate: duplicate})
}

// Importer runs one bulk import batch.
type Importer struct {
	Store Creator

	// ActorID is stamped onto every created record as the creator.
	ActorID string

	// DefaultStatus is applied when a row does not supply a status of its
	// own. Unlike identity fields, status is import-accepted.
	DefaultStatus string

	// Today is the reference date for age derivation.
	Today time.Time
}

// Run imports all rows of a parsed file. rows[0] is the header line; each
// subsequent element is one data row. The returned report holds exactly one
// outcome per data row, in file order.
//
// Run fails as a whole only when no actor id was supplied or the file has no
// header line; every per-row problem is captured in the report instead.
func (imp *Importer) Run(ctx context.Context, rows [][]string) (*Report, error) {
	if imp.ActorID == "" {
		return nil, ErrNoActor
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrNoHeader
	}

	headers := rows[0]
	dataRows := rows[1:]
	mapping := MapHeaders(headers)

	report := &Report{Rows: len(dataRows), Outcomes: make([]Outcome, 0, len(dataRows))}

	for i, row := range dataRows {
		rowNum := i + 1 // 1-based, excluding the header line

		rec := imp.buildRecord(headers, mapping, row)

		if err := ValidateRecord(rec); err != nil {
			report.rejected(rowNum, err.Error(), false)
			continue
		}

		id, err := imp.Store.Create(ctx, rec, imp.ActorID)
		if err != nil {
			report.rejected(rowNum, err.Error(), isDuplicateError(err))
			continue
		}
		report.created(rowNum, id)
	}

	slog.Info("import batch complete",
		"rows", report.Rows,
		"created", report.Created,
		"rejected", report.Rejected,
	)

	return report, nil
}

// buildRecord assembles one canonical record from a raw row: resolve each
// column through the mapping, coerce, then stamp system-derived values.
// Columns are visited left to right, so when two original headers map to the
// same field key the later column's value wins.
func (imp *Importer) buildRecord(headers []string, mapping ColumnMapping, row []string) *Record {
	rec := &Record{}

	for col, cell := range row {
		if col >= len(headers) {
			break
		}
		key, ok := mapping[headers[col]]
		if !ok {
			continue
		}
		// Identity fields are system-assigned, never honored from input.
		if schema.IsIdentity(key) {
			continue
		}
		if v, ok := CoerceValue(key, cell); ok {
			rec.Set(key, v)
		}
	}

	// Age is derived, never trusted as supplied input.
	if rec.DateOfBirth.Valid {
		age := DeriveAge(rec.DateOfBirth.Time, imp.Today)
		rec.Age = pgtype.Int4{Int32: int32(age), Valid: true}
	} else {
		rec.Age = pgtype.Int4{}
	}

	if !rec.Status.Valid && imp.DefaultStatus != "" {
		rec.Status = pgtype.Text{String: imp.DefaultStatus, Valid: true}
	}
	rec.CreatedBy = pgtype.Text{String: imp.ActorID, Valid: true}

	return rec
}

// isDuplicateError classifies a persistence error as a duplicate-identity
// rejection by inspecting its text for uniqueness markers (Postgres says
// "duplicate key value violates unique constraint").
func isDuplicateError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
