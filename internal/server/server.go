package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	appboard "github.com/preston-bernstein/football-slip-service/internal/app/board"
	appslips "github.com/preston-bernstein/football-slip-service/internal/app/slips"
	"github.com/preston-bernstein/football-slip-service/internal/config"
	httpserver "github.com/preston-bernstein/football-slip-service/internal/http"
	"github.com/preston-bernstein/football-slip-service/internal/http/handlers"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
	"github.com/preston-bernstein/football-slip-service/internal/notify"
	"github.com/preston-bernstein/football-slip-service/internal/poller"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
	"github.com/preston-bernstein/football-slip-service/internal/snapshots"
	"github.com/preston-bernstein/football-slip-service/internal/store"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	boards        *store.MemoryStore
	boardService  *appboard.Service
	slipService   *appslips.Service
	hub           *notify.Hub
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	refresher     handlers.Refresher
	syncer        *snapshots.Syncer
	backends      backends
	stopProvider  func()
	metricsStop   func(context.Context) error
}

// New connects the configured backends and wires the provider, poller and HTTP server.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServer(ctx, cfg, logger, nil, nil)
}

// newServer wires a server. A non-nil provider skips the factory and is only wrapped with retries.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.BoardProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	reg, err := leagues.Load(cfg.Board.LeaguesFile)
	if err != nil {
		return nil, err
	}
	loc := timeutil.ResolveLocation(cfg.Board.Timezone)

	stopProvider := func() {}
	if provider == nil {
		provider, stopProvider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	be, err := buildBackends(ctx, cfg.Storage, logger)
	if err != nil {
		stopProvider()
		return nil, err
	}

	memoryStore := store.NewMemoryStore()
	snaps := buildSnapshots(cfg)
	var loader appboard.SnapshotLoader
	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		loader = snaps.store
		writer = snaps.writer
	}

	boardSvc := appboard.NewService(memoryStore, loader, reg, appboard.Config{
		BookIndex: cfg.Board.BookIndex,
		Location:  loc,
		Days:      cfg.Board.Days,
	})
	hub := notify.NewHub(logger, wsOrigins(cfg.AllowedOrigins))
	slipSvc := appslips.NewService(be.slips, be.pools, boardSvc, appslips.Config{ClearGrace: cfg.Board.ClearGrace},
		appslips.WithNotifier(hub),
		appslips.WithPublisher(be.publisher),
		appslips.WithMetrics(recorder),
		appslips.WithLogger(logger),
	)

	plr := poller.New(provider, boardSvc, writer, reg, logger, recorder, poller.Config{
		Interval: cfg.PollInterval,
		Days:     cfg.Board.Days,
		Location: loc,
	})

	httpSrv := buildHTTPServer(cfg, boardSvc, slipSvc, hub, plr, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		boards:        memoryStore,
		boardService:  boardSvc,
		slipService:   slipSvc,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		refresher:     plr,
		syncer:        snaps.syncer(cfg, boardSvc, memoryStore, loc, logger),
		backends:      be,
		stopProvider:  stopProvider,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, boardSvc *appboard.Service, slipSvc *appslips.Service, hub *notify.Hub, plr *poller.Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(boardSvc, slipSvc, hub, logger, plr.Status)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:        handler,
		Admin:          admin,
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// wsOrigins maps the CORS origin list onto the websocket origin check, where empty accepts any.
func wsOrigins(origins []string) []string {
	for _, o := range origins {
		if o == "*" {
			return nil
		}
	}
	return origins
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.syncer.Run(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	// Open websockets are hijacked and not tracked by http.Server.Shutdown.
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.stopProvider != nil {
		s.stopProvider()
	}
	s.backends.closeAll(s.logger)

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
