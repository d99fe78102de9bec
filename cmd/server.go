package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/postgrab/api"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the postgrab HTTP API",
	Long:  `Runs the postgrab HTTP API`,
	Run: func(cmd *cobra.Command, args []string) {
		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		// failed assets are reported back to the client, which opens them itself
		a := newApp(gCtx, nil)
		defer a.Close()

		if a.cfg.LogLevel < log.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		router := api.NewRouter(api.NewHandler(a.pipeline), a.metrics.Handler(), a.cfg.Server.RateLimitPerMinute)
		server := api.NewServer(router, a.cfg.Server.Port)

		g.Go(func() error {
			log.WithField("addr", server.Addr).Info("serving API")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		// ...and shut down the server if the process needs to terminate
		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting API server")
			return server.Shutdown(context.Background())
		})

		if err := g.Wait(); err != nil {
			log.Errorf("caught error: %v", err)
		}
	},
}
