package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"templatesvc/internal/handler"
	"templatesvc/internal/repository"
	"templatesvc/internal/router"
	"templatesvc/internal/service"
)

func (a *app) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, gormDB, err := a.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDB(gormDB); err != nil {
			log.Errorf("close database: %v", err)
		}
	}()

	templateRepo := repository.NewTemplateRepository(gormDB)
	templateService := service.NewTemplateService(templateRepo)
	templateHandler := handler.NewTemplateHandler(templateService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, templateHandler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Server.Port
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
