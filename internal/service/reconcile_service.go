package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ingest"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/report"
	"github.com/mmynk/settleup/pkg/api"
)

var _ api.ReconcileServiceHandler = (*ReconcileService)(nil)

// ReconcileService implements the Connect ReconcileService.
// It owns one session ledger; Settle itself is stateless.
type ReconcileService struct {
	engine     *calculator.Engine
	ledger     *ledger.Ledger
	metrics    *metrics.Recorder
	reportOpts []report.Option
}

// Option configures a ReconcileService.
type Option func(*ReconcileService)

// WithEngine sets the settlement engine. Defaults to calculator.NewEngine().
func WithEngine(e *calculator.Engine) Option {
	return func(s *ReconcileService) { s.engine = e }
}

// WithMetrics records every run on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *ReconcileService) { s.metrics = m }
}

// WithReportOptions sets how reports are formatted.
func WithReportOptions(opts ...report.Option) Option {
	return func(s *ReconcileService) { s.reportOpts = opts }
}

// NewReconcileService creates a ReconcileService backed by l.
func NewReconcileService(l *ledger.Ledger, opts ...Option) *ReconcileService {
	s := &ReconcileService{ledger: l, engine: calculator.NewEngine()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle reconciles the contributions carried by the request.
func (s *ReconcileService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	contributions := make([]models.Contribution, 0, len(req.Msg.Contributions))
	for i, c := range req.Msg.Contributions {
		name := models.NormalizeName(c.Participant)
		if name == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("contribution %d: %w", i+1, ledger.ErrEmptyParticipant))
		}
		contributions = append(contributions, models.Contribution{ID: c.ID, Participant: name, Amount: c.Amount})
	}

	return connect.NewResponse(s.run(ctx, "settle", contributions)), nil
}

// AddContribution appends one contribution to the session ledger.
func (s *ReconcileService) AddContribution(ctx context.Context, req *connect.Request[api.AddContributionRequest]) (*connect.Response[api.AddContributionResponse], error) {
	c, err := s.ledger.Add(req.Msg.Participant, req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	slog.Debug("Contribution added", "id", c.ID, "participant", c.Participant, "amount", c.Amount.String())
	return connect.NewResponse(&api.AddContributionResponse{Contribution: toAPIContribution(c)}), nil
}

// RemoveContributions drops contributions by ID. Unknown IDs fail the whole call.
func (s *ReconcileService) RemoveContributions(ctx context.Context, req *connect.Request[api.RemoveContributionsRequest]) (*connect.Response[api.RemoveContributionsResponse], error) {
	if len(req.Msg.IDs) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("no contribution selected"))
	}

	removed, err := s.ledger.Remove(req.Msg.IDs...)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.RemoveContributionsResponse{Removed: removed}), nil
}

// ListContributions returns the session ledger in insertion order.
func (s *ReconcileService) ListContributions(ctx context.Context, req *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error) {
	snapshot := s.ledger.Snapshot()
	out := make([]api.Contribution, len(snapshot))
	for i, c := range snapshot {
		out[i] = toAPIContribution(c)
	}
	return connect.NewResponse(&api.ListContributionsResponse{Contributions: out}), nil
}

// ClearLedger empties the session ledger.
func (s *ReconcileService) ClearLedger(ctx context.Context, req *connect.Request[api.ClearLedgerRequest]) (*connect.Response[api.ClearLedgerResponse], error) {
	n := s.ledger.Clear()
	slog.Info("Ledger cleared", "contributions", n)
	return connect.NewResponse(&api.ClearLedgerResponse{Cleared: n}), nil
}

// ProcessLedger reconciles a snapshot of the session ledger.
// The ledger itself is left as it was.
func (s *ReconcileService) ProcessLedger(ctx context.Context, req *connect.Request[api.ProcessLedgerRequest]) (*connect.Response[api.SettleResponse], error) {
	return connect.NewResponse(s.run(ctx, "ledger", s.ledger.Snapshot())), nil
}

// ImportText parses pasted "name,amount" lines into the session ledger.
// Bad lines are skipped and returned as errors; good lines are still added.
func (s *ReconcileService) ImportText(ctx context.Context, req *connect.Request[api.ImportTextRequest]) (*connect.Response[api.ImportTextResponse], error) {
	res := ingest.ParseText(req.Msg.Text)

	lineErrors := make([]string, 0, len(res.Errors))
	for _, lineErr := range res.Errors {
		slog.Warn("Skipping malformed line", "line", lineErr.Line, "error", lineErr.Err)
		lineErrors = append(lineErrors, lineErr.Error())
	}
	s.metrics.ObserveRejectedLines(len(res.Errors))

	added, err := s.ledger.Load(res.Contributions)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Contribution, len(added))
	for i, c := range added {
		out[i] = toAPIContribution(c)
	}
	return connect.NewResponse(&api.ImportTextResponse{Added: out, Errors: lineErrors}), nil
}

func (s *ReconcileService) run(ctx context.Context, source string, contributions []models.Contribution) *api.SettleResponse {
	runID := uuid.New().String()
	out := s.engine.Reconcile(contributions)
	s.metrics.ObserveRun(source, out)

	rep := report.FromOutcome(out, s.reportOpts...)
	if out.Imbalanced {
		slog.WarnContext(ctx, "Balances do not sum to zero", "run_id", runID, "total", out.Total.String())
	}
	for _, res := range out.Plan.Unsettled {
		slog.WarnContext(ctx, "Party left unsettled",
			"run_id", runID,
			"participant", res.Participant,
			"role", res.Role,
			"remaining", res.Remaining.String(),
		)
	}
	slog.InfoContext(ctx, "Settlement run complete",
		"run_id", runID,
		"source", source,
		"contributions", len(contributions),
		"participants", len(out.Balances),
		"instructions", len(out.Plan.Instructions),
	)

	return toSettleResponse(out, rep)
}

func toAPIContribution(c models.Contribution) api.Contribution {
	return api.Contribution{ID: c.ID, Participant: c.Participant, Amount: c.Amount}
}

func toSettleResponse(out calculator.Outcome, rep report.Report) *api.SettleResponse {
	resp := &api.SettleResponse{
		Balances:     make([]api.Balance, len(out.Balances)),
		Total:        out.Total,
		Instructions: make([]api.Instruction, len(out.Plan.Instructions)),
		Warnings:     rep.Warnings,
		Report:       rep.Text(),
	}
	for i, b := range out.Balances {
		resp.Balances[i] = api.Balance{Participant: b.Participant, Amount: b.Amount}
	}
	for i, in := range out.Plan.Instructions {
		resp.Instructions[i] = api.Instruction{Payer: in.Payer, Payee: in.Payee, Amount: in.Amount}
	}
	for _, res := range out.Plan.Unsettled {
		resp.Unsettled = append(resp.Unsettled, api.Residual{
			Participant: res.Participant,
			Role:        string(res.Role),
			Remaining:   res.Remaining,
		})
	}
	return resp
}
