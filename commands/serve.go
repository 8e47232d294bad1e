package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	canvasrenderer "github.com/ByLCY/truescale/renderer/canvas"
	"github.com/ByLCY/truescale/server"
	"github.com/ByLCY/truescale/store"
)

// serve: 启动预览服务，直到收到 SIGINT/SIGTERM。
func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			st := store.New(doc)
			unsubscribe := st.Subscribe(func(s store.State) {
				logger.Debug("state changed",
					"ppi", s.Document.Calibration.PixelsPerInch,
					"columns", s.Document.Page.Columns,
					"calibration_open", s.CalibrationOpen,
				)
			})
			defer unsubscribe()

			rend, err := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{FontDir: cfg.FontDir})
			if err != nil {
				return err
			}
			srv := server.NewServer(st, rend, logger)

			httpServer := &http.Server{
				Addr:         cfg.Addr,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting truescale", "addr", cfg.Addr, "ppi", doc.Calibration.PixelsPerInch)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	return cmd
}
