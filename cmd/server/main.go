package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawmart-web/internal/apiclient"
	"pawmart-web/internal/appointment"
	"pawmart-web/internal/cart"
	"pawmart-web/internal/config"
	"pawmart-web/internal/db"
	"pawmart-web/internal/handler"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/metrics"
	"pawmart-web/internal/middleware"
	"pawmart-web/internal/order"
	"pawmart-web/internal/payment"
	"pawmart-web/internal/session"
	"pawmart-web/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

// server bundles the router with the background workers that must live as
// long as it does.
type server struct {
	router   http.Handler
	sessions *session.Registry
	limiter  *middleware.Limiter
}

func newServer(cfg *config.Config, database *sql.DB) *server {
	reg := metrics.NewRegistry()
	api := apiclient.New(cfg.BackendURL, cfg.BackendTimeout, reg)

	sessions := session.NewRegistry(cart.NewRemote(api))
	limiter := middleware.NewLimiter()

	h := handler.New(handler.Deps{
		Sessions:      sessions,
		Orders:        order.NewRemote(api),
		Users:         user.NewRemote(api),
		Appointments:  appointment.NewRemote(api),
		Payments:      payment.NewService(payment.NewRepository(database), cfg.PaymentURL),
		Metrics:       reg,
		CatalogPath:   cfg.CatalogPath,
		SecureCookies: cfg.IsProduction(),
	})

	return &server{
		router:   setupRouter(cfg, h, sessions, limiter),
		sessions: sessions,
		limiter:  limiter,
	}
}

func setupRouter(cfg *config.Config, h *handler.Handler, sessions *session.Registry, limiter *middleware.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Auth(cfg.JWTSecret))
	r.Use(limiter.Middleware)
	r.Use(middleware.Session(sessions))

	h.RegisterRoutes(r)
	return r
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	app := newServer(cfg, database)

	workers, cancel := context.WithCancel(ctx)
	defer cancel()
	go app.sessions.RunSweeper(workers, cfg.SessionSweepEvery, cfg.SessionIdleTimeout)
	go app.limiter.Run(workers)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("backend", cfg.BackendURL),
		)
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	return srv.Shutdown(shutdownCtx)
}
