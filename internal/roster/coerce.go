package roster

// coerce.go converts raw cell strings into typed canonical values.
//
// Coercion never fails a row: unparseable input degrades to "omitted" for
// that field only. A roster file with one garbled birth date still imports
// the person; the date is simply absent.

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinicops/roster/internal/schema"
)

const isoDate = "2006-01-02"

// usDateLayouts cover M/D/YYYY and MM/DD/YYYY; time.Parse with "1/2/2006"
// accepts both padded and unpadded month/day.
var usDateLayouts = []string{"1/2/2006"}

// genericDateLayouts is the fallback sweep for date strings that are neither
// ISO nor US slash format. Order matters: unambiguous layouts first.
var genericDateLayouts = []string{
	"2006/01/02", "2006.01.02",
	"1-2-2006", "1.2.2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

// CoerceValue converts a raw cell value into the canonical string form for
// key. The boolean is false when the value is omitted: empty after trim, or
// a date that no accepted form can parse. Non-date fields pass through as
// trimmed strings.
func CoerceValue(key schema.FieldKey, raw string) (string, bool) {
	v := CleanCell(raw)
	if v == "" {
		return "", false
	}

	if key == schema.FieldDateOfBirth {
		return coerceDate(v)
	}
	return v, true
}

// coerceDate normalizes a date string to ISO YYYY-MM-DD, trying in order:
// already-ISO passthrough, US M/D/YYYY rewritten with zero padding, then the
// generic layout sweep. Anything that does not yield a valid calendar date
// is omitted.
func coerceDate(v string) (string, bool) {
	if t, err := time.Parse(isoDate, v); err == nil {
		return t.Format(isoDate), true
	}

	for _, layout := range usDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(isoDate), true
		}
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(isoDate), true
		}
	}

	return "", false
}

// CleanCell removes common delimited-file artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="..."), and stray
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// DeriveAge computes the integer full years between birth and today,
// decremented by one when today's month/day falls strictly before the birth
// month/day in today's year. Pure and deterministic; both dates are treated
// as calendar dates with no time of day.
func DeriveAge(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// ExportFilename returns the date-stamped name for an export file.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("roster_export_%s.csv", now.Format(isoDate))
}
