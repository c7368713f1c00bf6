package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ReconcileServiceName is the fully-qualified name of the ReconcileService.
const ReconcileServiceName = "settleup.v1.ReconcileService"

// Procedure paths, one per RPC.
const (
	ReconcileServiceSettleProcedure              = "/settleup.v1.ReconcileService/Settle"
	ReconcileServiceAddContributionProcedure     = "/settleup.v1.ReconcileService/AddContribution"
	ReconcileServiceRemoveContributionsProcedure = "/settleup.v1.ReconcileService/RemoveContributions"
	ReconcileServiceListContributionsProcedure   = "/settleup.v1.ReconcileService/ListContributions"
	ReconcileServiceClearLedgerProcedure         = "/settleup.v1.ReconcileService/ClearLedger"
	ReconcileServiceProcessLedgerProcedure       = "/settleup.v1.ReconcileService/ProcessLedger"
	ReconcileServiceImportTextProcedure          = "/settleup.v1.ReconcileService/ImportText"
)

// ReconcileServiceHandler is implemented by the server.
type ReconcileServiceHandler interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
	AddContribution(context.Context, *connect.Request[AddContributionRequest]) (*connect.Response[AddContributionResponse], error)
	RemoveContributions(context.Context, *connect.Request[RemoveContributionsRequest]) (*connect.Response[RemoveContributionsResponse], error)
	ListContributions(context.Context, *connect.Request[ListContributionsRequest]) (*connect.Response[ListContributionsResponse], error)
	ClearLedger(context.Context, *connect.Request[ClearLedgerRequest]) (*connect.Response[ClearLedgerResponse], error)
	ProcessLedger(context.Context, *connect.Request[ProcessLedgerRequest]) (*connect.Response[SettleResponse], error)
	ImportText(context.Context, *connect.Request[ImportTextRequest]) (*connect.Response[ImportTextResponse], error)
}

// NewReconcileServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewReconcileServiceHandler(svc ReconcileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	handlers := map[string]http.Handler{
		ReconcileServiceSettleProcedure:              connect.NewUnaryHandler(ReconcileServiceSettleProcedure, svc.Settle, opts...),
		ReconcileServiceAddContributionProcedure:     connect.NewUnaryHandler(ReconcileServiceAddContributionProcedure, svc.AddContribution, opts...),
		ReconcileServiceRemoveContributionsProcedure: connect.NewUnaryHandler(ReconcileServiceRemoveContributionsProcedure, svc.RemoveContributions, opts...),
		ReconcileServiceListContributionsProcedure:   connect.NewUnaryHandler(ReconcileServiceListContributionsProcedure, svc.ListContributions, opts...),
		ReconcileServiceClearLedgerProcedure:         connect.NewUnaryHandler(ReconcileServiceClearLedgerProcedure, svc.ClearLedger, opts...),
		ReconcileServiceProcessLedgerProcedure:       connect.NewUnaryHandler(ReconcileServiceProcessLedgerProcedure, svc.ProcessLedger, opts...),
		ReconcileServiceImportTextProcedure:          connect.NewUnaryHandler(ReconcileServiceImportTextProcedure, svc.ImportText, opts...),
	}

	return "/" + ReconcileServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// ReconcileServiceClient calls a remote ReconcileService.
type ReconcileServiceClient struct {
	settle              *connect.Client[SettleRequest, SettleResponse]
	addContribution     *connect.Client[AddContributionRequest, AddContributionResponse]
	removeContributions *connect.Client[RemoveContributionsRequest, RemoveContributionsResponse]
	listContributions   *connect.Client[ListContributionsRequest, ListContributionsResponse]
	clearLedger         *connect.Client[ClearLedgerRequest, ClearLedgerResponse]
	processLedger       *connect.Client[ProcessLedgerRequest, SettleResponse]
	importText          *connect.Client[ImportTextRequest, ImportTextResponse]
}

// NewReconcileServiceClient creates a client for the service at baseURL.
func NewReconcileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReconcileServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &ReconcileServiceClient{
		settle:              connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+ReconcileServiceSettleProcedure, opts...),
		addContribution:     connect.NewClient[AddContributionRequest, AddContributionResponse](httpClient, baseURL+ReconcileServiceAddContributionProcedure, opts...),
		removeContributions: connect.NewClient[RemoveContributionsRequest, RemoveContributionsResponse](httpClient, baseURL+ReconcileServiceRemoveContributionsProcedure, opts...),
		listContributions:   connect.NewClient[ListContributionsRequest, ListContributionsResponse](httpClient, baseURL+ReconcileServiceListContributionsProcedure, opts...),
		clearLedger:         connect.NewClient[ClearLedgerRequest, ClearLedgerResponse](httpClient, baseURL+ReconcileServiceClearLedgerProcedure, opts...),
		processLedger:       connect.NewClient[ProcessLedgerRequest, SettleResponse](httpClient, baseURL+ReconcileServiceProcessLedgerProcedure, opts...),
		importText:          connect.NewClient[ImportTextRequest, ImportTextResponse](httpClient, baseURL+ReconcileServiceImportTextProcedure, opts...),
	}
}

func (c *ReconcileServiceClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) AddContribution(ctx context.Context, req *connect.Request[AddContributionRequest]) (*connect.Response[AddContributionResponse], error) {
	return c.addContribution.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) RemoveContributions(ctx context.Context, req *connect.Request[RemoveContributionsRequest]) (*connect.Response[RemoveContributionsResponse], error) {
	return c.removeContributions.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) ListContributions(ctx context.Context, req *connect.Request[ListContributionsRequest]) (*connect.Response[ListContributionsResponse], error) {
	return c.listContributions.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) ClearLedger(ctx context.Context, req *connect.Request[ClearLedgerRequest]) (*connect.Response[ClearLedgerResponse], error) {
	return c.clearLedger.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) ProcessLedger(ctx context.Context, req *connect.Request[ProcessLedgerRequest]) (*connect.Response[SettleResponse], error) {
	return c.processLedger.CallUnary(ctx, req)
}

func (c *ReconcileServiceClient) ImportText(ctx context.Context, req *connect.Request[ImportTextRequest]) (*connect.Response[ImportTextResponse], error) {
	return c.importText.CallUnary(ctx, req)
}
