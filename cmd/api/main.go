package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"smartspend/internal/app"
	"smartspend/internal/assistant"
	"smartspend/internal/httputil"
)

const maxBodyBytes = 1 << 20

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Log.Warn("failed to close dependencies", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		deps.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.Config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server error", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log, httputil.RouterOptions{
		AllowedOrigins: deps.Config.CORSOrigins,
		Timeout:        deps.Config.LLMTimeout + 5*time.Second,
	})

	r.Get("/", httputil.StatusHandler())
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Post("/categorize", categorizeHandler(deps))
	r.Post("/query", queryHandler(deps))
	return r
}

func categorizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistant.ExpenseRequest
		if err := decode(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "Invalid JSON payload", err, http.StatusBadRequest)
			return
		}

		res, err := deps.Assistant.Categorize(r.Context(), req)
		if errors.Is(err, assistant.ErrEmptyDescription) {
			httputil.Fail(deps.Log, w, "Description cannot be empty", err, http.StatusBadRequest)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "Internal server error", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func queryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistant.QueryRequest
		if err := decode(w, r, &req); err != nil {
			httputil.Fail(deps.Log, w, "Invalid JSON payload", err, http.StatusBadRequest)
			return
		}

		res, err := deps.Assistant.Query(r.Context(), req)
		if errors.Is(err, assistant.ErrEmptyQuery) {
			httputil.Fail(deps.Log, w, "Query cannot be empty", err, http.StatusBadRequest)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "Internal server error", err, http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if res.Degraded {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, res)
	}
}

// decode reads a JSON body into dst. An empty body decodes to the zero value
// so that it is reported by validation rather than as malformed JSON.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
