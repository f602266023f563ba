package server

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
	chimw "github.com/go-chi/chi/v5/middleware"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/notifications"
	"hrms/internal/domain/reports"
	"hrms/internal/domain/shift"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/email"
	"hrms/internal/platform/idempotency"
	"hrms/internal/platform/jobs"
	"hrms/internal/platform/memstore"
	"hrms/internal/platform/metrics"
	"hrms/internal/transport/http/api"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	audithandler "hrms/internal/transport/http/handlers/audit"
	authhandler "hrms/internal/transport/http/handlers/auth"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	reportshandler "hrms/internal/transport/http/handlers/reports"
	shifthandler "hrms/internal/transport/http/handlers/shift"
	"hrms/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Router  http.Handler
	Jobs    *jobs.Queue
	Metrics *metrics.Collector

	ping func(context.Context) error
}

type stores struct {
	users      auth.StoreAPI
	employees  employee.StoreAPI
	leaves     leave.StoreAPI
	attendance attendance.StoreAPI
	shifts     shift.StoreAPI
	audit      audit.StoreAPI
	replays    idempotency.StoreAPI
}

// New wires every service against the configured store and builds the
// router. The returned App owns a running job queue; call Close when done.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Metrics: metrics.New()}

	st, err := app.openStores(ctx)
	if err != nil {
		return nil, err
	}

	app.Jobs = jobs.New(cfg.JobQueueSize)
	app.Jobs.OnRun(app.Metrics.RecordJob)
	app.Jobs.Start(context.WithoutCancel(ctx))

	recorder := audit.NewRecorder(st.audit, app.Jobs)
	notify := notifications.New(email.New(cfg), app.Jobs, cfg.EmailFrom)

	authSvc := auth.NewService(st.users, recorder, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.SeedAdminEmail != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}
	employeeSvc := employee.NewService(st.employees, authSvc, recorder)
	leaveSvc := leave.NewService(st.leaves, st.employees, recorder, notify)
	leaveSvc.Metrics = app.Metrics
	attendanceSvc := attendance.NewService(st.attendance, recorder)
	shiftSvc := shift.NewService(st.shifts, st.employees, recorder)
	reportsSvc := reports.NewService(st.employees, st.leaves, st.attendance, recorder)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientInfo)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(app.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequireCapability(auth.CapAdmin)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

		authhandler.NewHandler(authSvc, employeeSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc, st.replays).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, st.replays).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
		shifthandler.NewHandler(shiftSvc).RegisterRoutes(r)
		audithandler.NewHandler(audit.New(st.audit), recorder).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})

	app.Router = router
	return app, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	if a.Config.StoreDriver == config.StoreMemory {
		mem := memstore.New()
		a.ping = mem.Ping
		return stores{users: mem, employees: mem, leaves: mem, attendance: mem, shifts: mem, audit: mem, replays: mem}, nil
	}

	pool, err := db.Connect(ctx, a.Config)
	if err != nil {
		return stores{}, fmt.Errorf("db connect: %w", err)
	}
	if a.Config.RunMigrations {
		if err := db.Migrate(ctx, pool, a.Config.MigrationsDir); err != nil {
			pool.Close()
			return stores{}, fmt.Errorf("migrations: %w", err)
		}
	}
	a.DB = pool
	a.ping = pool.Ping
	return stores{
		users:      auth.NewStore(pool),
		employees:  employee.NewStore(pool),
		leaves:     leave.NewStore(pool),
		attendance: attendance.NewStore(pool),
		shifts:     shift.NewStore(pool),
		audit:      audit.NewStore(pool),
		replays:    idempotency.NewStore(pool),
	}, nil
}

// Close drains queued background work, then releases the database.
func (a *App) Close() {
	if a.Jobs != nil {
		a.Jobs.Stop()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if err := serve(cfg); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func serve(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown failed", "err", err)
		}
	}()

	slog.Info("HRMS server listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
