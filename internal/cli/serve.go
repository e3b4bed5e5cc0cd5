package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations/awis"
)

const shutdownTimeout = 5 * time.Second

// urlInfoFetcher is the part of *awis.Client the HTTP handlers use.
type urlInfoFetcher interface {
	FetchURLInfo(ctx context.Context, host string, groups ...awis.ResponseGroup) (*awis.URLInfo, error)
}

// serveCommand creates the serve command, a small JSON API over lookups.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Long: `Serve lookups as a JSON HTTP API.

Endpoints:
  GET /urlinfo/{host}?groups=Rank,SiteData   lookup result as JSON
  GET /healthz                               liveness probe

Each request performs one upstream call; nothing is cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Handler:           newRouter(client, logger),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			printSuccess(cmd.OutOrStdout(), "Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))

			errc := make(chan error, 1)
			go func() { errc <- srv.Serve(ln) }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")

	return cmd
}

// newRouter builds the HTTP routes over f.
func newRouter(f urlInfoFetcher, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/urlinfo/{host}", func(w http.ResponseWriter, r *http.Request) {
		groups, err := awis.ParseResponseGroups(r.URL.Query().Get("groups"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		info, err := f.FetchURLInfo(r.Context(), chi.URLParam(r, "host"), groups...)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, info)
	})

	return r
}

// requestLogger logs one debug line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"took", time.Since(start).Round(time.Millisecond),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

type errorBody struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	FaultCode string    `json:"fault_code,omitempty"`
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	body := errorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if body.Code == "" {
		body.Code = errs.ErrCodeInternal
	}
	var fault *awis.Fault
	if errors.As(err, &fault) {
		body.FaultCode = fault.Code
		body.Message = fault.Message
	}
	writeJSON(w, logger, statusFor(err), body)
}

// statusFor maps an error code to the HTTP status served to clients.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidHost, errs.ErrCodeInvalidResponseGroup:
		return http.StatusBadRequest
	case errs.ErrCodeTransport:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errs.ErrCodeServiceFault, errs.ErrCodeMalformedResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeJSON writes v with status. The header is already sent when encoding
// fails, so the error can only be logged.
func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "status", status, "err", err)
	}
}
