package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee-house/pkg/config"
	"coffee-house/pkg/handlers"
	"coffee-house/pkg/markdown"
	"coffee-house/pkg/services"
	"coffee-house/pkg/widgets"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the website",
	Long: `serve starts the HTTP server. With --content.watch and a content
directory, edits to the datasets are picked up without a restart and open
pages reload themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func init() {
	serveCmd.Flags().String("server.addr", config.Addr, "address to listen on")
	serveCmd.Flags().String("server.mode", config.GinMode, "gin mode: debug, release or test")
	serveCmd.Flags().Bool("content.watch", config.WatchContent, "reload content when files in the content directory change")
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	gin.SetMode(config.GinMode)
	if err := config.CheckSessionSecret(); err != nil {
		return err
	}

	store := services.NewStore(contentSource(), markdown.NewRenderer())
	// Fail fast on broken content instead of on the first request.
	if _, err := store.Catalog(); err != nil {
		return err
	}

	simulator := services.NewSimulator(map[services.FormKind]time.Duration{
		services.ContactKind:     config.ContactDelay,
		services.ReservationKind: config.ReservationDelay,
		services.NewsletterKind:  config.NewsletterDelay,
	})

	h, err := handlers.New(store, simulator, widgets.NewRegistry(widgets.Defaults()...))
	if err != nil {
		return err
	}

	if config.WatchContent {
		if config.ContentDir == "" {
			log.Warn("content.watch needs content.dir, embedded content is not watched")
		} else {
			h.Reload = handlers.NewReloadHub()
			go func() {
				err := services.WatchContent(ctx, config.ContentDir, config.ReloadDebounce, func() {
					store.Invalidate()
					if _, err := store.Catalog(); err != nil {
						log.Errorf("Content reload failed: %v", err)
						return
					}
					h.Reload.Broadcast()
				})
				if err != nil {
					log.Errorf("Content watcher stopped: %v", err)
				}
			}()
		}
	}

	engine, err := h.Engine(config.SessionSecret)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Serving %s on %s", config.SiteName, config.Addr)
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

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	simulator.Wait(shutdownCtx)
	return nil
}
