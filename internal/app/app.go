package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-management-system/internal/auth"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/metinatakli/cinema-management-system/internal/mailer"
	"github.com/metinatakli/cinema-management-system/internal/ratelimit"
	"github.com/metinatakli/cinema-management-system/internal/repository"
	appvalidator "github.com/metinatakli/cinema-management-system/internal/validator"
	"github.com/metinatakli/cinema-management-system/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

const serviceName = "cinema-management-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer
	tokens    *auth.TokenManager
	limiter   limiter
	metrics   *metrics
	location  *time.Location

	healthChecks []healthCheck

	userRepo       domain.UserRepository
	tokenRepo      domain.RefreshTokenRepository
	hallRepo       domain.HallRepository
	movieRepo      domain.MovieRepository
	sessionRepo    domain.SessionRepository
	ticketRepo     domain.TicketRepository
	walletRepo     domain.WalletRepository
	attendanceRepo domain.AttendanceRepository
	scheduleRepo   domain.EmployeeScheduleRepository
}

type limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// Repositories groups the persistence dependencies handed to NewApp.
type Repositories struct {
	Users         domain.UserRepository
	RefreshTokens domain.RefreshTokenRepository
	Halls         domain.HallRepository
	Movies        domain.MovieRepository
	Sessions      domain.SessionRepository
	Tickets       domain.TicketRepository
	Wallet        domain.WalletRepository
	Attendances   domain.AttendanceRepository
	Schedules     domain.EmployeeScheduleRepository
}

func NewPostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         repository.NewPostgresUserRepository(db),
		RefreshTokens: repository.NewPostgresRefreshTokenRepository(db),
		Halls:         repository.NewPostgresHallRepository(db),
		Movies:        repository.NewPostgresMovieRepository(db),
		Sessions:      repository.NewPostgresSessionRepository(db),
		Tickets:       repository.NewPostgresTicketRepository(db),
		Wallet:        repository.NewPostgresWalletRepository(db),
		Attendances:   repository.NewPostgresAttendanceRepository(db),
		Schedules:     repository.NewPostgresEmployeeScheduleRepository(db),
	}
}

func Run() error {
	// a missing .env file is fine, flags and the real environment still apply
	_ = godotenv.Load()

	var cfg Config

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.Timezone, "timezone", envString("TIMEZONE", "UTC"), "Cinema timezone used for opening hours")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "CineX <no-reply@cinex.metinatakli.net>"), "SMTP sender")

	flag.StringVar(&cfg.JWT.Secret, "jwt-secret", envString("JWT_SECRET", ""), "JWT signing secret")
	flag.StringVar(&cfg.JWT.Issuer, "jwt-issuer", envString("JWT_ISSUER", serviceName), "JWT issuer")
	flag.DurationVar(&cfg.JWT.AccessTTL, "jwt-access-ttl", envDuration("JWT_ACCESS_TTL", 15*time.Minute), "Access token lifetime")
	flag.DurationVar(&cfg.JWT.RefreshTTL, "jwt-refresh-ttl", envDuration("JWT_REFRESH_TTL", 7*24*time.Hour), "Refresh token lifetime")

	flag.BoolVar(&cfg.RateLimit.Enabled, "limiter-enabled", envBool("LIMITER_ENABLED", true), "Enable the auth endpoint rate limiter")
	flag.IntVar(&cfg.RateLimit.Capacity, "limiter-capacity", envInt("LIMITER_CAPACITY", 10), "Rate limiter bucket capacity")
	flag.DurationVar(&cfg.RateLimit.RefillInterval, "limiter-refill-interval", envDuration("LIMITER_REFILL_INTERVAL", 6*time.Second), "Rate limiter token refill interval")

	flag.BoolVar(&cfg.TrustProxy, "trust-proxy", envBool("TRUST_PROXY", false), "Read client addresses from X-Forwarded-For/X-Real-IP")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if cfg.JWT.Secret == "" {
		return errors.New("jwt secret must be provided")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app, err := NewApp(cfg, logger, db, redisClient, appvalidator.NewValidator(), smtpMailer, NewPostgresRepositories(db))
	if err != nil {
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	repos Repositories,
) (*Application, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(redisClient, ratelimit.Config{
		Enabled:        cfg.RateLimit.Enabled,
		Capacity:       cfg.RateLimit.Capacity,
		RefillInterval: cfg.RateLimit.RefillInterval,
		Prefix:         "rl:auth",
	})

	app := &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		tokens:         auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL),
		limiter:        limiter,
		metrics:        metrics,
		location:       location,
		userRepo:       repos.Users,
		tokenRepo:      repos.RefreshTokens,
		hallRepo:       repos.Halls,
		movieRepo:      repos.Movies,
		sessionRepo:    repos.Sessions,
		ticketRepo:     repos.Tickets,
		walletRepo:     repos.Wallet,
		attendanceRepo: repos.Attendances,
		scheduleRepo:   repos.Schedules,
	}
	app.healthChecks = app.dependencyChecks()

	return app, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	if app.config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	admins := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin}

	r.Get("/health", app.GetHealth)

	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(app.rateLimit)

			r.Post("/signup", app.Signup)
			r.Post("/login", app.Login)
			r.Post("/refresh-token", app.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.authenticate)

			r.Post("/logout", app.Logout)
			r.Get("/profile", app.GetProfile)

			r.With(app.requireRole(admins...)).Get("/", app.ListUsers)
			r.With(app.requireRole(admins...)).Get("/employees", app.ListEmployees)
			r.With(app.requireRole(admins...)).Post("/add-employee", app.AddEmployee)
			r.With(app.requireRole(admins...)).Post("/create-employee", app.CreateEmployee)
		})
	})

	r.With(app.authenticate).Route("/halls", func(r chi.Router) {
		r.Get("/", app.ListHalls)
		r.Get("/{id}", app.GetHall)
		r.Get("/{id}/sessions", app.ListHallSessions)

		r.Group(func(r chi.Router) {
			r.Use(app.requireRole(admins...))

			r.Post("/", app.CreateHall)
			r.Put("/{id}", app.UpdateHall)
			r.Delete("/{id}", app.DeleteHall)
			r.Patch("/{id}/add-image", app.AddHallImages)
			r.Delete("/remove-image/{imageId}", app.RemoveHallImage)
		})
	})

	r.With(app.authenticate).Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMovies)
		r.Get("/{id}", app.GetMovie)
		r.Get("/{id}/sessions", app.ListMovieSessions)

		r.Group(func(r chi.Router) {
			r.Use(app.requireRole(admins...))

			r.Post("/", app.CreateMovie)
			r.Put("/{id}", app.UpdateMovie)
			r.Delete("/{id}", app.DeleteMovie)
			r.Patch("/{id}/add-image", app.AddMovieImages)
			r.Delete("/remove-image/{imageId}", app.RemoveMovieImage)
		})
	})

	r.With(app.authenticate).Route("/sessions", func(r chi.Router) {
		r.Get("/", app.ListSessions)
		r.Get("/{id}", app.GetSession)

		r.Group(func(r chi.Router) {
			r.Use(app.requireRole(admins...))

			r.Post("/", app.CreateSession)
			r.Put("/{id}", app.UpdateSession)
			r.Delete("/{id}", app.DeleteSession)
			r.Patch("/{id}/cancel", app.CancelSession)
		})
	})

	r.With(app.authenticate).Route("/tickets", func(r chi.Router) {
		r.Get("/", app.ListTickets)
		r.Post("/buy", app.BuyTicket)
	})

	r.With(app.authenticate).Route("/transactions", func(r chi.Router) {
		r.Get("/", app.GetTransactions)
		r.Post("/deposit", app.Deposit)
		r.Post("/withdraw", app.Withdraw)
		r.Post("/buy-ticket", app.BuyTicket)
		r.With(app.requireRole(admins...)).Get("/users/{id}", app.GetUserTransactions)
	})

	r.With(app.authenticate).Route("/attendances", func(r chi.Router) {
		r.With(app.requireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleReception)).
			Post("/attend", app.Attend)

		r.Group(func(r chi.Router) {
			r.Use(app.requireRole(domain.StaffRoles...))

			r.Get("/hall/{id}", app.GetHallAttendance)
			r.Get("/session/{id}", app.GetSessionAttendance)
			r.Get("/overview", app.GetAttendanceOverview)
		})
	})

	r.With(app.authenticate).Route("/employees-schedule", func(r chi.Router) {
		r.With(app.requireRole(domain.RoleSuperAdmin)).Post("/", app.CreateEmployeeSchedule)
		r.With(app.requireRole(domain.EmployeeRoles...)).Get("/self", app.GetOwnSchedule)
		r.With(app.requireRole(domain.RoleSuperAdmin)).Get("/employee/{id}", app.GetEmployeeSchedule)
	})

	return r
}
