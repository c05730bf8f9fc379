package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yclai/readquest/internal/api"
	"github.com/yclai/readquest/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for browser frontends",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		log := logging.New(logging.Options{
			FilePath: d.cfg.Log.FilePath,
			Debug:    d.cfg.Server.Debug,
			Console:  true,
		})
		defer log.Sync()

		srv := api.NewServer(api.Options{
			Logger:         log,
			Generator:      d.generator,
			Engine:         d.engine,
			Story:          d.story,
			Sink:           d.sink,
			Events:         d.store.EventRepo(),
			ReportSecret:   d.cfg.Report.Secret,
			AllowedOrigins: d.cfg.CORS.AllowedOrigins,
		})

		httpSrv := &http.Server{
			Addr:              d.cfg.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", d.cfg.Server.Addr))
			errCh <- httpSrv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server: %w", err)
		case sig := <-stop:
			log.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(ctx)
		}
	},
}
