package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// callRecord carries what inner interceptors learn about a call back out to
// the logging interceptor, which sits outside them.
type callRecord struct {
	subject string
}

type recordKey struct{}

// noteSubject stores the authenticated subject on the call record, if any.
func noteSubject(ctx context.Context, subject string) {
	if rec, ok := ctx.Value(recordKey{}).(*callRecord); ok {
		rec.subject = subject
	}
}

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC
// with the procedure, the token subject, the duration and the error code.
// Register it before RequireAuth so rejected calls are logged too. A nil
// logger means slog.Default().
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}

			rec := &callRecord{subject: GetSubject(ctx)}
			start := time.Now()
			resp, err := next(context.WithValue(ctx, recordKey{}, rec), req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"subject", rec.subject,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			var connectErr *connect.Error
			switch {
			case err == nil:
				log.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr):
				log.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				log.Error("RPC error", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
