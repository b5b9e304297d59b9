// Package store implements the roster persistence collaborator on
// PostgreSQL via pgx. It assigns identity fields on create; callers never
// supply them.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/clinicops/roster/internal/roster"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Postgres persists roster records in the roster_members table.
type Postgres struct {
	db DBTX
}

// New creates a Postgres store on the given connection or pool.
func New(db DBTX) *Postgres {
	return &Postgres{db: db}
}

const insertMember = `
INSERT INTO roster_members (
	id, unique_id,
	name, first_name, middle_name, last_name,
	ssn, email, phone, mobile_number,
	date_of_birth, age, gender, language,
	license_number, license_type,
	street, city, state, zip, country,
	height, hair, eyes,
	council_id, occupation_craft, status, notes,
	photo_url, signature_url, medical_history,
	created_by
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
	$31, $32
)
RETURNING id`

// Create persists a canonical record and returns the newly assigned
// identifier. Both identity fields are generated here; any values on the
// incoming record are ignored. Uniqueness violations (e.g. a duplicate
// identifying number) surface as the driver's error.
func (p *Postgres) Create(ctx context.Context, rec *roster.Record, actorID string) (string, error) {
	id := uuid.New().String()
	uniqueID := uuid.New().String()

	createdBy := rec.CreatedBy
	if !createdBy.Valid && actorID != "" {
		createdBy = pgtype.Text{String: actorID, Valid: true}
	}

	var assigned string
	err := p.db.QueryRow(ctx, insertMember,
		id, uniqueID,
		rec.Name, rec.FirstName, rec.MiddleName, rec.LastName,
		rec.SSN, rec.Email, rec.Phone, rec.Mobile,
		rec.DateOfBirth, rec.Age, rec.Gender, rec.Language,
		rec.LicenseNum, rec.LicenseType,
		rec.Street, rec.City, rec.State, rec.Zip, rec.Country,
		rec.Height, rec.Hair, rec.Eyes,
		rec.CouncilID, rec.Occupation, rec.Status, rec.Notes,
		rec.PhotoURL, rec.SigURL, rec.MedicalHist,
		createdBy,
	).Scan(&assigned)
	if err != nil {
		return "", err
	}
	return assigned, nil
}

const selectMembers = `
SELECT
	id, unique_id,
	name, first_name, middle_name, last_name,
	ssn, email, phone, mobile_number,
	date_of_birth, age, gender, language,
	license_number, license_type,
	street, city, state, zip, country,
	height, hair, eyes,
	council_id, occupation_craft, status, notes,
	photo_url, signature_url, medical_history,
	created_by
FROM roster_members
ORDER BY created_at, id`

// List returns all roster records in stable creation order.
func (p *Postgres) List(ctx context.Context) ([]*roster.Record, error) {
	rows, err := p.db.Query(ctx, selectMembers)
	if err != nil {
		return nil, fmt.Errorf("query roster members: %w", err)
	}
	defer rows.Close()

	var recs []*roster.Record
	for rows.Next() {
		rec := &roster.Record{}
		if err := rows.Scan(
			&rec.ID, &rec.UniqueID,
			&rec.Name, &rec.FirstName, &rec.MiddleName, &rec.LastName,
			&rec.SSN, &rec.Email, &rec.Phone, &rec.Mobile,
			&rec.DateOfBirth, &rec.Age, &rec.Gender, &rec.Language,
			&rec.LicenseNum, &rec.LicenseType,
			&rec.Street, &rec.City, &rec.State, &rec.Zip, &rec.Country,
			&rec.Height, &rec.Hair, &rec.Eyes,
			&rec.CouncilID, &rec.Occupation, &rec.Status, &rec.Notes,
			&rec.PhotoURL, &rec.SigURL, &rec.MedicalHist,
			&rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan roster member: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roster rows: %w", err)
	}

	return recs, nil
}

// Count returns the number of roster records.
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM roster_members").Scan(&n); err != nil {
		return 0, fmt.Errorf("count roster members: %w", err)
	}
	return n, nil
}
