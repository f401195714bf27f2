package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wadmaps/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories and the catalog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.Run(cfg)
			healthy := preflight.AllPassed(results)

			if ctx.jsonMode() {
				if err := writeJSON(cmd, map[string]any{"healthy": healthy, "checks": results}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Configuration", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Log format", statusInfo, cfg.Logging.Format+" / "+cfg.Logging.Level, colorize))
				fmt.Fprintln(out, renderStatusLine("Scan workers", statusInfo, strconv.Itoa(cfg.Scan.Workers), colorize))
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Checks", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
				}
			}

			if !healthy {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Skipped:
		return statusWarn
	case r.Passed:
		return statusOK
	default:
		return statusError
	}
}
