package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, serve the output directory and rebuild on content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := ctx.site(cmd)
			if err != nil {
				return err
			}
			logger := site.Logger()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := folio.NewPreviewServer(site)
			rebuild := func(ctx context.Context) {
				report, err := site.Build(ctx)
				server.Record(report, err)
				if err != nil {
					logger.Warn("build failed", "error", err)
				}
			}
			rebuild(runCtx)

			addr := fmt.Sprintf(":%d", port)
			errCh := make(chan error, 1)
			go func() {
				if err := server.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			logger.Info("preview server listening", "url", fmt.Sprintf("http://localhost:%d", port), "dir", site.Config.OutputDir)

			if !noWatch {
				go func() {
					if err := site.Watch(runCtx, folio.DefaultDebounce, rebuild); err != nil {
						logger.Error("watcher stopped", "error", err)
					}
				}()
			}

			select {
			case <-runCtx.Done():
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Echo.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Port to listen on")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not rebuild on content changes")
	return cmd
}
