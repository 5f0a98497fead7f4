// Package app wires configuration, storage, services and the HTTP router
// into one runnable unit shared by every CLI command.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/pages/internal/config"
	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/httpapi"
	"github.com/alexanderramin/pages/internal/menu"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/alexanderramin/pages/internal/service"
	"go.uber.org/zap"
)

// App holds the open database and every service built on it.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB

	Sites  service.SiteService
	Groups service.GroupService
	Pages  service.PageService
	Menu   service.MenuService
	Import service.ImportService
}

// New opens the configured database, runs migrations and wires the
// services. The caller owns the returned App and must Close it.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := db.Open(cfg.Database.Path, db.Options{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	siteRepo := repository.NewSQLiteSiteRepo(database)
	groupRepo := repository.NewSQLiteGroupRepo(database)
	pageRepo := repository.NewSQLitePageRepo(database)
	uow := db.NewUnitOfWork(database)

	observer := service.NewZapUseCaseObserver(logger)
	assembler := menu.NewAssembler(
		menu.NewRepositoryStore(siteRepo, groupRepo, pageRepo),
		menu.WithMaxParallel(cfg.Menu.MaxParallel),
	)

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     database,
		Sites:  service.NewSiteService(siteRepo, observer),
		Groups: service.NewGroupService(siteRepo, groupRepo, observer),
		Pages:  service.NewPageService(siteRepo, groupRepo, pageRepo, uow, observer),
		Menu:   service.NewMenuService(assembler, observer),
		Import: service.NewImportService(uow, observer),
	}, nil
}

// Handler returns the HTTP API backed by this App.
func (a *App) Handler() http.Handler {
	return httpapi.NewRouter(httpapi.Deps{
		Sites:          a.Sites,
		Groups:         a.Groups,
		Pages:          a.Pages,
		Menu:           a.Menu,
		DB:             a.DB,
		Logger:         a.Logger,
		AllowedOrigins: a.Config.CORS.AllowedOrigins,
	})
}

// Serve listens on the configured address until ctx is cancelled, then
// drains in-flight requests for up to Server.ShutdownTimeout.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Server.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.Config.Server.Addr(), err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server started", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down http server", zap.Duration("timeout", a.Config.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	a.Logger.Info("http server stopped")
	return nil
}

// Close releases the database and flushes the logger.
func (a *App) Close() error {
	err := a.DB.Close()
	_ = a.Logger.Sync()
	return err
}
