package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// Headers the session service sets so that calls can be correlated in the
// log without decoding message bodies.
const (
	// UnassignedItemsHeader lists the comma-separated indices of items that
	// blocked a calculation.
	UnassignedItemsHeader = "Unassigned-Items"
	// CalculationIDHeader carries the ID of a successful calculation.
	CalculationIDHeader = "Calculation-Id"
)

// LoggingInterceptor logs one line per session RPC. Blocked calculations are
// logged at WARN with the unassigned items; successful ones carry their
// calculation ID.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"operator", GetOperator(ctx), // empty if auth is off
				"duration_ms", time.Since(start).Milliseconds(),
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
				if id := resp.Header().Get(CalculationIDHeader); id != "" {
					attrs = append(attrs, "calculation_id", id)
				}
				slog.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() == connect.CodeFailedPrecondition:
				if items := connectErr.Meta().Get(UnassignedItemsHeader); items != "" {
					attrs = append(attrs, "unassigned_items", items)
				}
				slog.Warn("Calculation blocked", append(attrs, "error", connectErr.Message())...)
			case connectErr != nil:
				slog.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.Error("RPC failed", append(attrs, "error", err)...)
			}
			return resp, err
		}
	}
}
