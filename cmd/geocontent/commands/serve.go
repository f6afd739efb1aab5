package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ncobase/geocontent/config"
	"github.com/ncobase/geocontent/content"
	"github.com/ncobase/geocontent/data"
	"github.com/ncobase/geocontent/data/cache"
	"github.com/ncobase/geocontent/data/mongodb"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/logging/observes"
	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/router"
	"github.com/ncobase/geocontent/version"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Serve the content list API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	cleanupLog, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer cleanupLog()
	ver := version.GetVersionInfo().Version
	logger.SetVersion(ver)

	shutdownTracer, err := observes.NewTracer(ctx, cfg.Tracer, ver)
	if err != nil {
		return fmt.Errorf("failed to init tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Errorf(context.Background(), "failed to flush traces: %v", err)
		}
	}()

	conns, cleanupData, err := data.New(ctx, cfg.Data)
	if err != nil {
		return fmt.Errorf("failed to connect data: %w", err)
	}
	defer cleanupData()

	if cfg.RunMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(conns.Ping, listServices(conns, query.NewParser(cfg.Query))...)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// cleanupLog releases the output of the latest reload as well.
	config.Watch(cfg, func(next *config.Config) {
		if _, err := logger.New(next.Logger); err != nil {
			logger.Errorf(ctx, "failed to apply logger config: %v", err)
			return
		}
		logger.Infof(ctx, "config reloaded, query, data and tracer changes apply on restart")
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "%s listening on %s", cfg.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Infof(shutdownCtx, "shutting down")
	return srv.Shutdown(shutdownCtx)
}

// listServices builds one list service per content type over the mongo
// database, caching known facet values in redis and delegating search to
// meilisearch when they are connected.
func listServices(conns *data.Connections, parser *query.Parser) []*router.ListService {
	var services []*router.ListService
	for _, name := range content.Names() {
		t, _ := content.Lookup(name)

		coll := mongodb.NewCollection(conns.Collection(name),
			mongodb.WithSchema(t.Schema),
			mongodb.WithRelations(t.MongoRelations()))

		var known paging.KnownValuesResolver = t
		if conns.Redis != nil {
			known = cache.NewKnownValues(t, cache.NewCache[[]string](conns.Redis, "geocontent:known:"+name), 0)
		}
		opts := []paging.Option{paging.WithKnownValues(known)}
		if s := conns.Searcher(name); s != nil {
			opts = append(opts, paging.WithSearcher(s))
		}

		services = append(services, router.NewListService(t, parser, paging.NewExecutor(coll, opts...)))
	}
	return services
}
