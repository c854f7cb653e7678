package offline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nursenotes/internal/client/client"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/cache"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/dmitrijs2005/nursenotes/internal/netx"
	"github.com/dmitrijs2005/nursenotes/internal/offline/config"
)

// App wires the cache storage, controller and HTTP server for cmd/offline.
type App struct {
	config     *config.Config
	logger     logging.Logger
	controller *Controller
	server     *Server
	closer     io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, true)

	var (
		store  cache.Storage
		closer io.Closer
	)
	if c.CacheDB == "" {
		store = cache.NewMemoryStorage()
	} else {
		db, err := client.OpenSQLite(ctx, c.CacheDB)
		if err != nil {
			return nil, fmt.Errorf("cache db init error: %w", err)
		}
		store = cache.NewSQLiteStorage(db)
		closer = db
	}

	ctrl, err := NewController(Config{
		AppName:  c.AppName,
		Version:  c.Version,
		Origin:   c.Origin,
		Manifest: c.Manifest,
	}, store, netx.NewTransport(c.UpstreamTimeout), logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	return &App{
		config:     c,
		logger:     logger,
		controller: ctrl,
		server:     NewServer(c.Addr, ctrl, logger),
		closer:     closer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run registers the cache version and serves until a signal arrives. A
// failed registration is logged; requests then go to the previous version
// or straight to the origin.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	if app.closer != nil {
		defer app.closer.Close()
	}

	app.logger.Info(ctx, "Starting app...", "cache", app.controller.CacheName(), "origin", app.config.Origin)

	app.initSignalHandler(cancelFunc)

	if err := app.controller.Register(ctx); err != nil {
		app.logger.Error(ctx, "cache registration failed", "error", err, "active", app.controller.Active())
	}

	return app.server.Run(ctx)
}
