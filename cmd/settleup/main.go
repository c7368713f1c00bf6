// Command settleup reads "name,amount" lines and prints who pays whom.
//
// Usage:
//
//	settleup [-precision N] [-currency S] [-lang en|he] [-json] [-strict] [file ...]
//	settleup token -subject NAME
//
// With no files, contributions are read from stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/ingest"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/report"
	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitWarning = 3
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	slog.SetDefault(logging.New(stderr, logging.LevelFromEnv(), os.Getenv("LOG_FORMAT")))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return exitFailure
	}

	if len(args) > 0 && args[0] == "token" {
		return runToken(cfg, args[1:], stdout, stderr)
	}
	return runSettle(ctx, cfg, args, stdin, stdout, stderr)
}

func runSettle(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("settleup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	precision := fs.Int("precision", int(cfg.Precision), "decimal places in one currency unit")
	currency := fs.String("currency", cfg.Currency, "currency symbol printed before amounts")
	lang := fs.String("lang", cfg.Language, "report language (en, he)")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	strict := fs.Bool("strict", false, "exit with status 3 when the run has warnings")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	for _, err := range []error{config.CheckPrecision(*precision), config.CheckLanguage(*lang)} {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	contributions, err := readContributions(fs.Args(), stdin)
	if err != nil {
		slog.Error("Failed to read contributions", "error", err)
		return exitFailure
	}

	places := int32(*precision)
	svc := service.NewReconcileService(
		ledger.New(),
		service.WithEngine(calculator.NewEngine(calculator.WithPrecision(places))),
		service.WithReportOptions(
			report.WithCurrency(*currency),
			report.WithPrecision(places),
			report.WithLabels(report.LabelsFor(*lang)),
		),
	)

	req := &api.SettleRequest{Contributions: make([]api.Contribution, len(contributions))}
	for i, c := range contributions {
		req.Contributions[i] = api.Contribution{Participant: c.Participant, Amount: c.Amount}
	}
	resp, err := svc.Settle(ctx, connect.NewRequest(req))
	if err != nil {
		slog.Error("Settlement failed", "error", err)
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp.Msg); err != nil {
			slog.Error("Failed to write output", "error", err)
			return exitFailure
		}
	} else if _, err := io.WriteString(stdout, resp.Msg.Report); err != nil {
		slog.Error("Failed to write output", "error", err)
		return exitFailure
	}

	if *strict && len(resp.Msg.Warnings) > 0 {
		return exitWarning
	}
	return exitOK
}

// readContributions parses every file in order, or stdin when none is given.
// Rejected lines are logged and skipped.
func readContributions(paths []string, stdin io.Reader) ([]models.Contribution, error) {
	var results []ingest.Result
	if len(paths) == 0 {
		res, err := ingest.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		results = append(results, res)
	}
	for _, path := range paths {
		res, err := ingest.ParseFile(path)
		if err != nil {
			return nil, err
		}
		for i := range res.Errors {
			res.Errors[i].Text = path + ": " + res.Errors[i].Text
		}
		results = append(results, res)
	}

	var contributions []models.Contribution
	for _, res := range results {
		for _, lineErr := range res.Errors {
			slog.Warn("Invalid input line skipped", "line", lineErr.Line, "text", lineErr.Text, "error", lineErr.Err)
		}
		contributions = append(contributions, res.Contributions...)
	}
	return contributions, nil
}

func runToken(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("settleup token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	subject := fs.String("subject", "", "who the token is issued to")
	ttl := fs.Duration("ttl", cfg.TokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set to issue tokens")
		return exitFailure
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, *ttl).Generate(*subject)
	if errors.Is(err, auth.ErrEmptySubject) {
		fmt.Fprintln(stderr, "-subject is required")
		return exitUsage
	}
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		return exitFailure
	}

	fmt.Fprintln(stdout, token)
	return exitOK
}
