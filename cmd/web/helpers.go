package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/gymplan/internal/errors"
)

const flashKey = "flash"

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.render(w, r, http.StatusInternalServerError, "error", newBaseTemplateData(r))
}

// clientError answers invalid form posts with 400 Bad Request.
func (app *application) clientError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "client error", errors.SlogError(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// flash stores a message shown once on the next rendered page.
func (app *application) flash(r *http.Request, msg string) {
	app.sessionManager.Put(r.Context(), flashKey, msg)
}
