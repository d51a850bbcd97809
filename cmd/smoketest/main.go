package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/gymplan/internal/e2etest"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/logging"
	"github.com/myrjola/gymplan/internal/testhelpers"
)

// checkPages loads the pages without changing the stored profile.
func checkPages(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	if _, err = e2etest.FindForm(doc, "/profile"); err != nil {
		return errors.Wrap(err, "home has no profile form")
	}
	// The progress page redirects home when there is no profile yet so both outcomes render a document.
	if _, err = client.GetDoc(ctx, "/progress"); err != nil {
		return errors.Wrap(err, "get progress")
	}

	resp, err := client.Get(ctx, "/smoketest-not-found")
	if err != nil {
		return errors.Wrap(err, "get missing page")
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: missing page returned %d", e2etest.ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}
	if err = checkPages(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error checking pages", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
}
