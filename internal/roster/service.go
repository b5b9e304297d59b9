package roster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/clinicops/roster/internal/config"
)

// Store is the full persistence collaborator: it creates records during
// import and lists them for export. Satisfied by store.Postgres.
type Store interface {
	Creator
	List(ctx context.Context) ([]*Record, error)
}

// Service ties the import pipeline to its collaborators: the persistence
// store, the single-flight batch guard, and configuration defaults.
type Service struct {
	store Store
	guard *BatchGuard

	defaultStatus string
	maxFileSize   int64

	// now supplies the reference date for age derivation; overridable in
	// tests.
	now func() time.Time
}

// NewService creates the roster service from its store and configuration.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{
		store:         store,
		guard:         NewBatchGuard(cfg.Import.MaxWait),
		defaultStatus: cfg.Import.DefaultStatus,
		maxFileSize:   cfg.Import.MaxFileSize,
		now:           time.Now,
	}
}

// ImportFile runs one bulk import batch from a delimited file.
//
// The batch is refused up front when actorID is empty, when another batch is
// in flight, or when the file has no parsable header line. Per-row problems
// never surface here; they are entries in the returned report.
func (s *Service) ImportFile(ctx context.Context, file io.Reader, actorID string) (*Report, error) {
	if actorID == "" {
		return nil, ErrNoActor
	}

	if err := s.guard.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.guard.Release()

	rows, err := ReadRows(file, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	imp := &Importer{
		Store:         s.store,
		ActorID:       actorID,
		DefaultStatus: s.defaultStatus,
		Today:         s.now(),
	}

	start := time.Now()
	report, err := imp.Run(ctx, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("import finished",
		"actor", actorID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// Export writes the current roster as a delimited file in the canonical
// header order. Returns the number of records written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load roster for export: %w", err)
	}
	if err := ExportCSV(w, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// ExportFilename returns the date-stamped download name for an export
// produced now.
func (s *Service) ExportFilename() string {
	return ExportFilename(s.now())
}

// WaitForImports blocks until any in-flight import batch completes, for
// graceful shutdown.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.guard.WaitForDrain(ctx)
}

// ImportActive reports whether an import batch is currently running.
func (s *Service) ImportActive() bool {
	return s.guard.Active()
}
