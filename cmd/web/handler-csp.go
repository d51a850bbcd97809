package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/gymplan/internal/errors"
)

// maxCSPReportBytes is plenty for a single violation report.
const maxCSPReportBytes = 64 << 10

type cspViolationReport struct {
	Report struct {
		DocumentURI        string `json:"document-uri"`
		ViolatedDirective  string `json:"violated-directive"`
		EffectiveDirective string `json:"effective-directive"`
		BlockedURI         string `json:"blocked-uri"`
		SourceFile         string `json:"source-file"`
		LineNumber         int    `json:"line-number"`
		Disposition        string `json:"disposition"`
	} `json:"csp-report"`
}

// cspViolation logs the reports browsers send to the CSP report-uri.
func (app *application) cspViolation(w http.ResponseWriter, r *http.Request) {
	var report cspViolationReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCSPReportBytes)).Decode(&report); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelInfo, "invalid CSP violation report", errors.SlogError(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	app.logger.LogAttrs(r.Context(), slog.LevelWarn, "CSP violation",
		slog.String("document_uri", report.Report.DocumentURI),
		slog.String("violated_directive", report.Report.ViolatedDirective),
		slog.String("effective_directive", report.Report.EffectiveDirective),
		slog.String("blocked_uri", report.Report.BlockedURI),
		slog.String("source_file", report.Report.SourceFile),
		slog.Int("line_number", report.Report.LineNumber),
		slog.String("disposition", report.Report.Disposition),
		slog.String("user_agent", r.UserAgent()))
	w.WriteHeader(http.StatusNoContent)
}
