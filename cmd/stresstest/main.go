package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/gymplan/internal/e2etest"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/logging"
	"github.com/myrjola/gymplan/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	numClients              = 10
	scenariosPerClient      = 20
	maxConcurrentOperations = 20
	scenarioTimeout         = 30 * time.Second
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	trainingDays            = 7
	baseWeight              = 60.0
	weightRange             = 40.0
	expectedArgsCount       = 2
)

// ensureProfile creates a seven day profile so that every plan day can be logged.
func ensureProfile(ctx context.Context, client *e2etest.Client) error {
	_, err := client.PostForm(ctx, "/profile", url.Values{
		"name":   {"Stress Test"},
		"age":    {"30"},
		"gender": {"female"},
		"goal":   {"1"},
		"days":   {strconv.Itoa(trainingDays)},
	})
	if err != nil {
		return errors.Wrap(err, "create profile")
	}
	return nil
}

// scenario browses the plan, logs a workout and records a weight like a user finishing a session would.
func scenario(ctx context.Context, client *e2etest.Client) error {
	if _, err := client.GetDoc(ctx, "/"); err != nil {
		return errors.Wrap(err, "get home")
	}
	if _, err := client.GetDoc(ctx, "/progress"); err != nil {
		return errors.Wrap(err, "get progress")
	}
	day := rand.IntN(trainingDays) + 1 //nolint:gosec // load pattern, not security.
	if _, err := client.PostForm(ctx, "/log", url.Values{
		"day":   {strconv.Itoa(day)},
		"notes": {"stress test"},
	}); err != nil {
		return errors.Wrap(err, "log workout", slog.Int("day", day))
	}
	weight := baseWeight + rand.Float64()*weightRange //nolint:gosec // load pattern, not security.
	if _, err := client.PostForm(ctx, "/weight", url.Values{
		"weight": {strconv.FormatFloat(weight, 'f', 1, 64)},
		"unit":   {"kg"},
	}); err != nil {
		return errors.Wrap(err, "add weight")
	}
	return nil
}

// runLoadTest runs the scenario from several clients at once and fails when too many scenarios fail.
func runLoadTest(ctx context.Context, baseURL string, logger *slog.Logger) error {
	var successCount, failureCount atomic.Int64

	clients := make([]*e2etest.Client, numClients)
	for i := range clients {
		client, err := e2etest.NewClient(baseURL)
		if err != nil {
			return errors.Wrap(err, "create client", slog.Int("client", i))
		}
		clients[i] = client
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for i, client := range clients {
		for range scenariosPerClient {
			g.Go(func() error {
				scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
				defer cancel()
				if err := scenario(scenarioCtx, client); err != nil {
					failureCount.Add(1)
					// Failures are counted, not propagated, so the other scenarios keep running.
					logger.LogAttrs(scenarioCtx, slog.LevelWarn, "scenario failed",
						slog.Int("client", i), errors.SlogError(err))
					return nil
				}
				successCount.Add(1)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "wait for scenarios")
	}

	total := successCount.Load() + failureCount.Load()
	successRate := float64(successCount.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate))
	if successRate < successRateThreshold {
		return fmt.Errorf("success rate %.1f%% below threshold %.1f%%", successRate, successRateThreshold)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}

	client, err := e2etest.NewClient(baseURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelWarn, "overwriting the stored profile with test data")
	if err = ensureProfile(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "profile setup failed", errors.SlogError(err))
		os.Exit(1)
	}

	if err = runLoadTest(ctx, baseURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Int("scenarios", numClients*scenariosPerClient))
}
