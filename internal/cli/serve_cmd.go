package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/buildplan/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var (
		planPath    string
		addr        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				if err := app.openPlan(cmd.ErrOrStderr(), planPath); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan document to load before serving")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "API listen address")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Separate listen address for /metrics (default: served on --addr)")

	return cmd
}

// newAPIHandler builds the gin router. Without a separate metrics address
// /metrics is mounted on the API router.
func newAPIHandler(app *App, mountMetrics bool) *gin.Engine {
	srv := api.NewServer(api.Deps{
		Workspace:  app.Workspace,
		Generator:  app.Generator,
		Advisor:    app.Advisor,
		Classifier: app.Classifier,
		Logger:     app.logger(),
	})
	r := srv.Router()
	if mountMetrics && app.Metrics != nil {
		r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}
	return r
}

// serve runs the API (and optionally a metrics listener) until ctx is
// cancelled, then shuts both down gracefully.
func serve(ctx context.Context, app *App, addr, metricsAddr string) error {
	servers := []*http.Server{{
		Addr:              addr,
		Handler:           newAPIHandler(app, metricsAddr == ""),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if metricsAddr != "" && app.Metrics != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		servers = append(servers, &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			app.logger().Info("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		app.logger().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
