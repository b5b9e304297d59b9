package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/clinicops/roster/internal/logging"
	"github.com/clinicops/roster/internal/roster"
)

// actorHeader carries the acting user's id, supplied by the identity
// provider fronting this service. An import without it is refused before any
// row is attempted.
const actorHeader = "X-Actor-ID"

// handleImport runs one bulk roster import from an uploaded delimited file
// and returns the per-row report.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	actorID := r.Header.Get(actorHeader)
	if actorID == "" {
		writeError(w, http.StatusBadRequest, roster.ErrNoActor.Error())
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "file", header.Filename, "actor", actorID)
	logger.Info("import started", "size", header.Size)

	report, err := s.service.ImportFile(r.Context(), file, actorID)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrImportBusy):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, roster.ErrNoActor), errors.Is(err, roster.ErrNoHeader):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	logger.Info("import report",
		"rows", report.Rows,
		"created", report.Created,
		"rejected", report.Rejected,
	)
	writeJSON(w, report)
}

// handleExport streams the current roster as a CSV download in the fixed
// canonical header order.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename := s.service.ExportFilename()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	count, err := s.service.Export(r.Context(), w)
	if err != nil {
		// Headers may already be sent; log and abort the stream.
		logging.FromContext(r.Context()).Error("export failed", "error", err)
		return
	}

	logging.FromContext(r.Context()).Info("export complete", "records", count, "file", filename)
}

// handleHealth reports liveness and whether an import batch is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":        "ok",
		"import_active": s.service.ImportActive(),
	})
}
