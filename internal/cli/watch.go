package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"slidecast/internal/converter"
	"slidecast/internal/watcher"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and convert every deck dropped into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := deps.Cfg

			for _, dir := range []string{cfg.Paths.Watch, cfg.Paths.Output, cfg.Paths.Temp} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("create directory %s: %w", dir, err)
				}
			}

			conv, closeHistory, err := buildConverter(deps, cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			handler := func(ctx context.Context, deckPath string) error {
				base := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
				return conv.Convert(ctx, converter.Request{
					DeckPath:   deckPath,
					OutputPath: filepath.Join(cfg.Paths.Output, base+".mp4"),
				})
			}

			w, err := watcher.New(cfg.Paths.Watch, handler, deps.Log, maxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					errChan <- err
				}
			}()

			deps.Log.Info(ctx, "Watching %s for decks. Press Ctrl+C to stop", cfg.Paths.Watch)

			select {
			case <-sigChan:
				deps.Log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				deps.Log.Error(ctx, "Watcher error: %v", err)
				return err
			}

			cancel()
			return nil
		},
	}

	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 1, "Maximum decks converted at once")

	return cmd
}
