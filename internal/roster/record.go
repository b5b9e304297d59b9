// Package roster provides the business logic for bulk roster import and
// export operations. This package has no UI dependencies and can be used by
// any frontend.
package roster

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/clinicops/roster/internal/schema"
)

// Record is the canonical roster record: one optional typed slot per
// schema.FieldKey. A slot with Valid=false means "not provided", which is
// distinct from an explicit clear (only the edit path can clear).
type Record struct {
	ID          pgtype.Text
	UniqueID    pgtype.Text
	Name        pgtype.Text
	FirstName   pgtype.Text
	MiddleName  pgtype.Text
	LastName    pgtype.Text
	SSN         pgtype.Text
	Email       pgtype.Text
	Phone       pgtype.Text
	Mobile      pgtype.Text
	DateOfBirth pgtype.Date
	Age         pgtype.Int4
	Gender      pgtype.Text
	Language    pgtype.Text
	LicenseNum  pgtype.Text
	LicenseType pgtype.Text
	Street      pgtype.Text
	City        pgtype.Text
	State       pgtype.Text
	Zip         pgtype.Text
	Country     pgtype.Text
	Height      pgtype.Text
	Hair        pgtype.Text
	Eyes        pgtype.Text
	CouncilID   pgtype.Text
	Occupation  pgtype.Text
	Status      pgtype.Text
	Notes       pgtype.Text
	PhotoURL    pgtype.Text
	SigURL      pgtype.Text
	MedicalHist pgtype.Text

	// CreatedBy is the acting user stamped by the importer; it is not part
	// of the external file format.
	CreatedBy pgtype.Text
}

// slot returns a pointer to the text slot for key, or nil for keys that are
// not plain text (date_of_birth, age) or unknown.
func (r *Record) slot(key schema.FieldKey) *pgtype.Text {
	switch key {
	case schema.FieldID:
		return &r.ID
	case schema.FieldUniqueID:
		return &r.UniqueID
	case schema.FieldName:
		return &r.Name
	case schema.FieldFirstName:
		return &r.FirstName
	case schema.FieldMiddleName:
		return &r.MiddleName
	case schema.FieldLastName:
		return &r.LastName
	case schema.FieldSSN:
		return &r.SSN
	case schema.FieldEmail:
		return &r.Email
	case schema.FieldPhone:
		return &r.Phone
	case schema.FieldMobileNumber:
		return &r.Mobile
	case schema.FieldGender:
		return &r.Gender
	case schema.FieldLanguage:
		return &r.Language
	case schema.FieldLicenseNumber:
		return &r.LicenseNum
	case schema.FieldLicenseType:
		return &r.LicenseType
	case schema.FieldStreet:
		return &r.Street
	case schema.FieldCity:
		return &r.City
	case schema.FieldState:
		return &r.State
	case schema.FieldZip:
		return &r.Zip
	case schema.FieldCountry:
		return &r.Country
	case schema.FieldHeight:
		return &r.Height
	case schema.FieldHair:
		return &r.Hair
	case schema.FieldEyes:
		return &r.Eyes
	case schema.FieldCouncilID:
		return &r.CouncilID
	case schema.FieldOccupation:
		return &r.Occupation
	case schema.FieldStatus:
		return &r.Status
	case schema.FieldNotes:
		return &r.Notes
	case schema.FieldPhotoURL:
		return &r.PhotoURL
	case schema.FieldSignatureURL:
		return &r.SigURL
	case schema.FieldMedicalHist:
		return &r.MedicalHist
	}
	return nil
}

// Set stores a coerced value into the slot for key. Values for
// date_of_birth must already be ISO YYYY-MM-DD (the coercer guarantees this);
// anything else for that key leaves the slot unset. Setting an already-set
// slot overwrites it, which is how a later duplicate column wins.
func (r *Record) Set(key schema.FieldKey, value string) {
	if value == "" {
		return
	}

	if key == schema.FieldDateOfBirth {
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return
		}
		r.DateOfBirth = pgtype.Date{Time: t, Valid: true}
		return
	}
	if key == schema.FieldAge {
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		r.Age = pgtype.Int4{Int32: int32(n), Valid: true}
		return
	}

	if s := r.slot(key); s != nil {
		*s = pgtype.Text{String: value, Valid: true}
	}
}

// Value returns the string rendering of the slot for key, or "" when the
// slot is not provided. Dates render as ISO YYYY-MM-DD.
func (r *Record) Value(key schema.FieldKey) string {
	if key == schema.FieldDateOfBirth {
		if !r.DateOfBirth.Valid {
			return ""
		}
		return r.DateOfBirth.Time.Format("2006-01-02")
	}
	if key == schema.FieldAge {
		if !r.Age.Valid {
			return ""
		}
		return strconv.Itoa(int(r.Age.Int32))
	}

	if s := r.slot(key); s != nil && s.Valid {
		return s.String
	}
	return ""
}
