package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/brunchsplit/internal/auth"
	"github.com/mmynk/brunchsplit/internal/metrics"
	"github.com/mmynk/brunchsplit/internal/middleware"
	"github.com/mmynk/brunchsplit/internal/service"
	"github.com/mmynk/brunchsplit/internal/session"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one shared session over Connect RPC",
		Long: `Serve the session over Connect (HTTP/1.1 and h2c) with JSON bodies.
When BRUNCH_TOKEN_SECRET is set every call needs "Authorization: Bearer <token>";
mint one with "brunchsplit token".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Addr
			}
			r, err := loadReceipt(cmd.Context())
			if err != nil {
				return err
			}
			sess, err := session.New(r)
			if err != nil {
				return err
			}
			handler, err := newServeHandler(sess, metrics.New(), cfg.TokenSecret)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return listenAndServe(ctx, addr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from BRUNCH_ADDR or :8080)")
	return cmd
}

// newServeHandler wires the session service, metrics and health endpoints.
// An empty secret leaves the service open.
func newServeHandler(sess *session.Session, m *metrics.Metrics, secret string) (http.Handler, error) {
	interceptors := []connect.Interceptor{
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	}
	if secret != "" {
		jwtManager, err := auth.NewJWTManager(secret, cfg.TokenTTL)
		if err != nil {
			return nil, err
		}
		interceptors = append([]connect.Interceptor{middleware.RequireAuth(jwtManager)}, interceptors...)
		slog.Info("Token auth enabled")
	} else {
		slog.Warn("Token auth disabled; set BRUNCH_TOKEN_SECRET to require tokens")
	}

	svc := service.NewSessionService(sess, m)
	mux := http.NewServeMux()
	mux.Handle("/"+service.ServiceName+"/", svc.Handler(connect.WithInterceptors(interceptors...)))
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	// h2c for HTTP/2 without TLS
	return h2c.NewHandler(corsMiddleware(mux), &http2.Server{}), nil
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+service.UnassignedItemsHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
