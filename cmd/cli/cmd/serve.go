package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/westat/peregrine/pkg/web"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the trigger over HTTP",
	Long: `Runs the HTTP API: POST /api/v1/invocations starts the crawler, GET /api/v1/crawler
describes it, and /healthz and /metrics serve health checks and Prometheus scraping. Swagger UI is at /swagger/index.html.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		awsCfg, err := awsConfig(ctx)
		if err != nil {
			return err
		}
		gin.SetMode(gin.ReleaseMode)
		router := web.NewRouter(newInvoker(awsCfg), newDescriber(awsCfg), logrus.StandardLogger())

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", conf.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logrus.WithField("addr", srv.Addr).Info("serving trigger API")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logrus.Info("trigger API stopped")
		return nil
	},
}
