package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/lintang-b-s/skyroute/docs"
	"github.com/lintang-b-s/skyroute/pkg/graph"
	"github.com/lintang-b-s/skyroute/pkg/ingest"
	"github.com/lintang-b-s/skyroute/pkg/kv"
	mymiddleware "github.com/lintang-b-s/skyroute/pkg/server/middleware"
	"github.com/lintang-b-s/skyroute/pkg/server/rest"
	"github.com/lintang-b-s/skyroute/pkg/server/rest/service"
)

const shutdownTimeout = 10 * time.Second

var (
	listenAddr   string
	useRateLimit float64
	watchFiles   bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the http api",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listenaddr", "", "server listen address")
	serveCmd.Flags().Float64Var(&useRateLimit, "ratelimit", 0, "requests per second per client ip, 0 = tanpa rate limit")
	serveCmd.Flags().BoolVar(&watchFiles, "watch", false, "rebuild graph ketika source file berubah")
}

//	@title			skyroute API
//	@version		1.0
//	@description	flight route engine that never routes through restricted airspace. Dijkstra over a zone-filtered airport graph.

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("listenaddr") {
		cfg.Server.ListenAddr = listenAddr
	}
	if cmd.Flags().Changed("ratelimit") {
		cfg.Server.RateLimit = useRateLimit
	}
	if cmd.Flags().Changed("watch") {
		cfg.Data.Watch = watchFiles
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, fromFiles, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)
	svcMetrics := service.NewMetrics(reg)

	flightSvc := service.NewFlightService(graph.NewStore(), logger, svcMetrics)
	flightSvc.Rebuild(ds)

	if cfg.Data.Watch && fromFiles {
		w, err := ingest.NewWatcher(sources(), synth(), logger, func(ds ingest.Dataset) {
			flightSvc.Rebuild(ds)
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()
		go w.Start(ctx)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Server.RateLimit > 0 {
		limiter := mymiddleware.NewRateLimiter(cfg.Server.RateLimit, int(cfg.Server.RateLimit)*2)
		r.Use(limiter.Limit)
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), //The url pointing to API definition
	))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	rest.FlightRouter(r, flightSvc)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("addr", cfg.Server.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadDataset prefers the source files and falls back to the badger
// snapshot written by the ingest command.
func loadDataset(ctx context.Context) (ingest.Dataset, bool, error) {
	if cfg.Data.AirportsFile != "" {
		ds, err := ingest.LoadDataset(ctx, sources(), synth(), logger)
		if err == nil {
			return ds, true, nil
		}
		if cfg.Storage.BadgerDir == "" {
			return ingest.Dataset{}, false, err
		}
		logger.Warn("failed to load source files, falling back to snapshot",
			slog.String("error", err.Error()))
	}

	db, err := kv.Open(cfg.Storage.BadgerDir, logger)
	if err != nil {
		return ingest.Dataset{}, false, err
	}
	defer db.Close()

	ds, meta, err := db.LoadDataset(ctx)
	if err != nil {
		return ingest.Dataset{}, false, fmt.Errorf("load snapshot from %s: %w", cfg.Storage.BadgerDir, err)
	}
	logger.Info("loaded snapshot",
		slog.String("version", meta.Version),
		slog.Time("savedAt", meta.SavedAt),
		slog.Int("airports", meta.Airports),
		slog.Int("routes", meta.Routes),
		slog.Int("zones", meta.Zones))
	return ds, false, nil
}
