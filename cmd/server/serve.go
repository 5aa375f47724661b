package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitbuilder/server/internal/api"
	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/repository"
	"fitbuilder/server/internal/repository/local"
	"fitbuilder/server/internal/repository/mongo"
	"fitbuilder/server/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serve(ctx context.Context) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infoln("starting FitBuilder server...")
	cfg := a.cfg
	c := &clients{cfg: cfg}
	defer func() {
		err = multierr.Append(err, c.closers.Close())
	}()

	reg := metrics.NewRegistry()
	m := metrics.NewManager("fitbuilder", "server", reg)

	guestStore, err := c.openStore(ctx, local.WithFallbackHook(m.StoreFallbackHook()))
	if err != nil {
		return err
	}

	var (
		authService service.AuthService
		serverStore repository.RoutineRepository
	)
	if cfg.Database.Enabled {
		dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return fmt.Errorf("connect to mongodb: %w", err)
		}
		c.closers.add(func() error {
			log.Infoln("disconnecting MongoDB...")
			return mongo.DisconnectDB(dbClient)
		})
		appDB := dbClient.Database(cfg.Database.Name)
		log.Infof("database %s connected", cfg.Database.Name)

		go func() {
			indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(indexCtx, appDB)
		}()

		serverStore = mongo.NewMongoRoutineRepository(appDB)
		authService = service.NewAuthService(mongo.NewMongoUserRepository(appDB), cfg.JWT.Secret, cfg.JWT.Expiration)
	} else {
		log.Infoln("accounts disabled, serving guests only")
	}

	media, err := c.openMedia(ctx)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	routineService := service.NewRoutineService(guestStore, serverStore, m)
	svc := api.Services{
		Auth:     authService,
		Catalog:  service.NewCatalogService(cat, media),
		Drafts:   service.NewDraftService(cat, routineService, m, service.DefaultMaxDrafts),
		Routines: routineService,
		Metrics:  m,
	}
	if cfg.Metrics.Enabled {
		svc.Registry = reg
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	api.SetupRoutes(router, svc)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infoln("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Infoln("server exiting")
	return nil
}
