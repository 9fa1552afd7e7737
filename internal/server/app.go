// Package server wires the application together: config, database,
// migrations, domain services and the HTTP API, plus signal handling for a
// clean shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mzhadan/pomotrack/internal/logging"
	"github.com/mzhadan/pomotrack/internal/server/config"
	"github.com/mzhadan/pomotrack/internal/server/httpapi"
	"github.com/mzhadan/pomotrack/internal/server/migrations"
	"github.com/mzhadan/pomotrack/internal/server/sessions"
	"github.com/mzhadan/pomotrack/internal/server/tags"
	"github.com/mzhadan/pomotrack/internal/server/tasks"
	"github.com/mzhadan/pomotrack/internal/server/tasktags"
	"github.com/mzhadan/pomotrack/internal/server/timertypes"
	"github.com/mzhadan/pomotrack/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	userRepo := users.NewPostgresRepository(db)
	taskRepo := tasks.NewPostgresRepository(db)
	tagRepo := tags.NewPostgresRepository(db)
	sessionRepo := sessions.NewPostgresRepository(db)
	linkRepo := tasktags.NewPostgresRepository(db)
	timerTypeRepo := timertypes.NewPostgresRepository(db)

	userService := users.NewService(userRepo, cfg)
	taskService := tasks.NewService(taskRepo, linkRepo)
	tagService := tags.NewService(tagRepo, linkRepo)
	sessionService := sessions.NewService(sessionRepo)
	linkService := tasktags.NewService(linkRepo, taskRepo, tagRepo)

	srv := httpapi.NewServer(cfg.EndpointAddr, []byte(cfg.SecretKey), logger,
		userService, taskService, tagService, sessionService, linkService, timerTypeRepo)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until a shutdown signal arrives, then closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "app stopped")
}
