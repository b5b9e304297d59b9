package roster

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestValidateRecord(t *testing.T) {
	text := func(s string) pgtype.Text {
		return pgtype.Text{String: s, Valid: true}
	}

	tests := []struct {
		name    string
		rec     *Record
		wantErr bool
	}{
		{
			name: "full name present",
			rec:  &Record{Name: text("John Doe")},
		},
		{
			name: "first name only",
			rec:  &Record{FirstName: text("Ana")},
		},
		{
			name: "last name only",
			rec:  &Record{LastName: text("Lee")},
		},
		{
			name:    "empty record rejected",
			rec:     &Record{},
			wantErr: true,
		},
		{
			name:    "other fields but no name",
			rec:     &Record{Email: text("a@b.com"), Phone: text("555-0100")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Error() != "missing name information" {
				t.Errorf("ValidateRecord() reason = %q, want %q", err.Error(), "missing name information")
			}
		})
	}
}
