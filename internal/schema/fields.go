// Package schema defines the canonical roster record schema: the fixed set of
// field keys, the header dictionary that translates external column labels
// into those keys, and the canonical export header order.
//
// All tables in this package are versioned build-time constants. Import
// behavior for a given file is fully determined by these tables plus the
// file's own header line; nothing here is user-editable at runtime.
package schema

import "strings"

// Version identifies the schema revision the dictionary and export headers
// belong to. Bump when a key is added or a label mapping changes.
const Version = "2025-08"

// FieldKey is one slot in the fixed internal roster record schema,
// independent of any external file's column naming.
type FieldKey string

const (
	FieldID            FieldKey = "id"
	FieldUniqueID      FieldKey = "unique_id"
	FieldName          FieldKey = "name"
	FieldFirstName     FieldKey = "first_name"
	FieldMiddleName    FieldKey = "middle_name"
	FieldLastName      FieldKey = "last_name"
	FieldSSN           FieldKey = "ssn"
	FieldEmail         FieldKey = "email"
	FieldPhone         FieldKey = "phone"
	FieldMobileNumber  FieldKey = "mobile_number"
	FieldDateOfBirth   FieldKey = "date_of_birth"
	FieldAge           FieldKey = "age"
	FieldGender        FieldKey = "gender"
	FieldLanguage      FieldKey = "language"
	FieldLicenseNumber FieldKey = "license_number"
	FieldLicenseType   FieldKey = "license_type"
	FieldStreet        FieldKey = "street"
	FieldCity          FieldKey = "city"
	FieldState         FieldKey = "state"
	FieldZip           FieldKey = "zip"
	FieldCountry       FieldKey = "country"
	FieldHeight        FieldKey = "height"
	FieldHair          FieldKey = "hair"
	FieldEyes          FieldKey = "eyes"
	FieldCouncilID     FieldKey = "council_id"
	FieldOccupation    FieldKey = "occupation_craft"
	FieldStatus        FieldKey = "status"
	FieldNotes         FieldKey = "notes"
	FieldPhotoURL      FieldKey = "photo_url"
	FieldSignatureURL  FieldKey = "signature_url"
	FieldMedicalHist   FieldKey = "medical_history"
)

// HeaderDictionary maps a normalized external column label (trimmed,
// lower-cased) to its canonical field key. Labels with no entry here are
// silently ignored on import so files may carry extra columns.
var HeaderDictionary = map[string]FieldKey{
	"internal id":      FieldID,
	"unique id":        FieldUniqueID,
	"name":             FieldName,
	"first name":       FieldFirstName,
	"middle name":      FieldMiddleName,
	"last name":        FieldLastName,
	"ssn":              FieldSSN,
	"email":            FieldEmail,
	"phone":            FieldPhone,
	"mobile number":    FieldMobileNumber,
	"date of birth":    FieldDateOfBirth,
	"age":              FieldAge,
	"gender":           FieldGender,
	"language":         FieldLanguage,
	"license number":   FieldLicenseNumber,
	"license type":     FieldLicenseType,
	"street":           FieldStreet,
	"city":             FieldCity,
	"state":            FieldState,
	"zip":              FieldZip,
	"country":          FieldCountry,
	"height":           FieldHeight,
	"hair":             FieldHair,
	"eyes":             FieldEyes,
	"council id":       FieldCouncilID,
	"occupation/craft": FieldOccupation,
	"status":           FieldStatus,
	"notes":            FieldNotes,
	"photo url":        FieldPhotoURL,
	"signature url":    FieldSignatureURL,
	"medical history":  FieldMedicalHist,
}

// ExportHeaders is the fixed canonical header order for exported files. It is
// a strict superset of the import-accepted set: identity fields and the
// derived age are included so an export is a complete snapshot, while re-import
// discards them again.
var ExportHeaders = []string{
	"Internal ID",
	"Unique ID",
	"Name",
	"First Name",
	"Middle Name",
	"Last Name",
	"SSN",
	"Email",
	"Phone",
	"Mobile Number",
	"Date of Birth",
	"Age",
	"Gender",
	"Language",
	"License Number",
	"License Type",
	"Street",
	"City",
	"State",
	"Zip",
	"Country",
	"Height",
	"Hair",
	"Eyes",
	"Council ID",
	"Occupation/Craft",
	"Status",
	"Notes",
	"Photo URL",
	"Signature URL",
	"Medical History",
}

// IsIdentity reports whether key is assigned exclusively by the persistence
// layer. Identity values present in an import file are discarded.
func IsIdentity(key FieldKey) bool {
	return key == FieldID || key == FieldUniqueID
}

// IsDerived reports whether key is computed from another field rather than
// stored as independently supplied truth. Derived values in an import file
// are ignored and recomputed.
func IsDerived(key FieldKey) bool {
	return key == FieldAge
}

// Lookup resolves a raw external column label to its canonical field key.
// The label is trimmed and lower-cased before the dictionary lookup.
func Lookup(label string) (FieldKey, bool) {
	key, ok := HeaderDictionary[strings.ToLower(strings.TrimSpace(label))]
	return key, ok
}
