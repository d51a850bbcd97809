package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(shared(next))))
		}
	)

	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))
	mux.Handle("POST /profile", session(http.HandlerFunc(app.profilePOST)))
	mux.Handle("GET /progress", session(http.HandlerFunc(app.progress)))
	mux.Handle("POST /log", session(http.HandlerFunc(app.logPOST)))
	mux.Handle("POST /weight", session(http.HandlerFunc(app.weightPOST)))
	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("POST /api/csp-violation", noSession(http.HandlerFunc(app.cspViolation)))
	mux.Handle("/", session(http.HandlerFunc(app.notFound)))

	return mux
}
