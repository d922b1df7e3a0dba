package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	authpg "github.com/frahmantamala/workforce-ops/internal/auth/postgres"
	"github.com/frahmantamala/workforce-ops/internal/checklist"
	checklistpg "github.com/frahmantamala/workforce-ops/internal/checklist/postgres"
	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/dashboard"
	"github.com/frahmantamala/workforce-ops/internal/issue"
	issuepg "github.com/frahmantamala/workforce-ops/internal/issue/postgres"
	"github.com/frahmantamala/workforce-ops/internal/notification"
	"github.com/frahmantamala/workforce-ops/internal/performance"
	perfpg "github.com/frahmantamala/workforce-ops/internal/performance/postgres"
	"github.com/frahmantamala/workforce-ops/internal/transport/rest"
	"github.com/frahmantamala/workforce-ops/internal/transport/swagger"
	"github.com/frahmantamala/workforce-ops/internal/user"
	userpg "github.com/frahmantamala/workforce-ops/internal/user/postgres"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Bus    *events.EventBus
	Poller *notification.Poller
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	if err := deps.Poller.Start(); err != nil {
		deps.Logger.Error("Failed to start notification poller", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Poller.Stop(ctx)
		deps.Bus.Wait()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	loc, err := config.Workforce.Location()
	if err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	provider, err := newIdentityProvider(ctx, config, gdb)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}

	bus := events.NewEventBus(lg, events.WithWorkers(config.Workforce.EventWorkers))
	profiles := userpg.NewProfileRepository(db)

	authService := auth.NewService(provider, profiles, nil, lg)
	userService := user.NewService(profiles, lg)
	perfService := performance.NewService(perfpg.NewPerformanceRepository(gdb), nil, lg)
	issueService := issue.NewService(issuepg.NewIssueRepository(gdb), bus, nil, lg)
	checklistService := checklist.NewService(
		checklistpg.NewTemplateRepository(gdb),
		checklistpg.NewSubmissionRepository(gdb),
		perfService,
		bus,
		lg,
		checklist.WithLocation(loc),
	)
	dashboardService := dashboard.NewService(perfService, issueService, nil, loc, lg)

	if path := config.Workforce.ChecklistTemplatesFile; path != "" {
		overrides, err := checklist.LoadTemplates(path)
		if err != nil {
			return nil, err
		}
		if err := checklistService.SeedTemplates(ctx, overrides); err != nil {
			return nil, fmt.Errorf("failed to seed checklist templates: %w", err)
		}
	}

	hub := notification.NewHub(lg,
		notification.WithLocation(loc),
		notification.WithRetention(config.Workforce.NotificationRetention),
		notification.WithMaxEntries(config.Workforce.NotificationMaxEntries),
	)
	hub.Register(bus)

	if config.Slack.Enabled {
		client := slack.New(config.Slack.BotToken)
		issue.NewSlackNotifier(client, config.Slack.ChannelID, issue.Priority(config.Slack.MinPriority), lg).Register(bus)
		lg.Info("slack issue notifications enabled", "channel", config.Slack.ChannelID, "min_priority", config.Slack.MinPriority)
	}

	var spec *swagger.Spec
	if config.Server.OpenAPIPath != "" {
		spec, err = swagger.Load(ctx, config.Server.OpenAPIPath)
		if err != nil {
			return nil, err
		}
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:       rest.NewHealthHandler(map[string]rest.Pinger{"postgres": db}),
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Checklist:    checklist.NewHandler(checklistService),
		Issue:        issue.NewHandler(issueService),
		Performance:  performance.NewHandler(perfService),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Notification: notification.NewHandler(hub),
	}, rest.RouterOptions{
		AllowedOrigins: splitOrigins(config.Server.AllowedOrigins),
		Spec:           spec,
	})

	return &Dependencies{
		Config: config,
		DB:     db,
		Gorm:   gdb,
		Router: router,
		Bus:    bus,
		Poller: notification.NewPoller(hub, config.Workforce.NotificationInterval, lg),
		Logger: lg,
	}, nil
}

func newIdentityProvider(ctx context.Context, cfg *internal.Config, gdb *gorm.DB) (auth.IdentityProvider, error) {
	switch cfg.Identity.Provider {
	case "firebase":
		client, err := auth.NewFirebaseClient(ctx, cfg.Identity.FirebaseProjectID, cfg.Identity.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return auth.NewFirebaseProvider(client), nil
	default:
		tokens := auth.NewJWTTokenGenerator(
			cfg.Security.JWTAccessSecret,
			cfg.Security.JWTRefreshSecret,
			cfg.Security.AccessTokenDuration,
			cfg.Security.RefreshTokenDuration,
		)
		return auth.NewLocalProvider(authpg.NewCredentialRepository(gdb), tokens, cfg.Security.BCryptCost), nil
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initGorm shares the sqlx connection pool with GORM.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
