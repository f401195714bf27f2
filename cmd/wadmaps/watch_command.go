package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"wadmaps/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var initial bool

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Scan archives as they appear in a directory until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runner, closeFn, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			// The initial scan and watch batches share one runner and its lock.
			var mu sync.Mutex
			handle := func(runCtx context.Context, paths []string) {
				mu.Lock()
				defer mu.Unlock()
				results, err := runner.Run(runCtx, paths)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						fmt.Fprintf(cmd.ErrOrStderr(), "scan failed: %v\n", err)
					}
					return
				}
				if ctx.jsonMode() {
					for _, r := range results {
						_ = writeJSON(cmd, r)
					}
					return
				}
				printScanResults(out, results, false)
			}

			w, err := watch.New(args[0], cfg.Scan.Extensions, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, handle, logger)
			if err != nil {
				return err
			}
			if initial {
				go func() {
					<-w.Ready()
					handle(cmd.Context(), []string{w.Dir()})
				}()
			}
			if !ctx.jsonMode() {
				fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", w.Dir())
			}
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&initial, "initial", false, "Scan the directory once before waiting for changes")
	return cmd
}
