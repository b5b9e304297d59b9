package roster

import "errors"

// ErrMissingName is the rejection reason for rows that carry no usable name.
var ErrMissingName = errors.New("missing name information")

// ValidateRecord enforces the minimal identity requirement on a coerced
// record: at least one of name, first name, or last name must be present.
//
// Uniqueness is deliberately not checked here; duplicate identifying numbers
// surface from the persistence layer and are classified by the importer.
func ValidateRecord(rec *Record) error {
	if rec.Name.Valid || rec.FirstName.Valid || rec.LastName.Valid {
		return nil
	}
	return ErrMissingName
}
