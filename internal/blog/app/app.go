package app

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

	"github.com/redis/go-redis/v9"

	httpapi "github.com/kartikeyan-sudo/BlogXAi/internal/blog/http"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store/drivers/sqlite"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the blog service together: store, token codec, services,
// and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	redis *redis.Client
	codec *tokenx.Codec

	authService     *service.AuthService
	userService     *service.UserService
	avatarService   *service.AvatarService
	postService     *service.PostService
	taxonomyService *service.TaxonomyService
	commentService  *service.CommentService
	likeService     *service.LikeService
	presenceService *service.PresenceService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if cfg.AuthSecret == "" {
		return nil, errors.New("BLOG_AUTH_SECRET is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "blog-service",
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		codec: tokenx.NewCodec([]byte(cfg.AuthSecret)),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initRedis()
	app.initServices()

	ctx := context.Background()
	if err := app.seedAdmin(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("blog service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server and closes connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("blog service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initRedis connects the optional presence backend. A missing or bad Redis
// URL downgrades presence to the offline fallback instead of failing boot.
func (app *Application) initRedis() {
	if app.cfg.RedisURL == "" {
		app.logger.Info("presence tracking disabled (no redis configured)")
		return
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		app.logger.Warn("invalid redis url, presence tracking disabled", "error", err)
		return
	}
	app.redis = redis.NewClient(opts)
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Codec:    app.codec,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.avatarService = &service.AvatarService{Store: app.db, Root: app.cfg.UploadsDir}
	app.postService = &service.PostService{Store: app.db}
	app.taxonomyService = &service.TaxonomyService{Store: app.db}
	app.commentService = &service.CommentService{Store: app.db}
	app.likeService = &service.LikeService{Store: app.db}
	app.presenceService = &service.PresenceService{
		Client: app.redis,
		TTL:    app.cfg.PresenceTTL,
	}
}

func (app *Application) seedAdmin(ctx context.Context) error {
	bootstrap := &service.BootstrapService{Store: app.db}
	ctx = slogx.WithContext(ctx, app.logger)
	return bootstrap.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword)
}

func (app *Application) initHTTP() error {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.db,
		httpx.SessionWriter{Secure: app.cfg.Env == "prod"},
		app.cfg.TokenTTL,
		app.logger,
	)

	router.UploadsDir = app.cfg.UploadsDir
	router.AuthService = app.authService
	router.UserService = app.userService
	router.AvatarService = app.avatarService
	router.PostService = app.postService
	router.TaxonomyService = app.taxonomyService
	router.CommentService = app.commentService
	router.LikeService = app.likeService
	router.PresenceService = app.presenceService
	if err := router.ApplyRoutes(); err != nil {
		return fmt.Errorf("failed to build routes: %w", err)
	}

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
