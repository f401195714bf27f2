package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"wadmaps/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var refresh bool
	var workers int

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Extract map names from files and directories into the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, closeFn, err := ctx.newRunner(scan.WithRefresh(refresh), scan.WithWorkers(workers))
			if err != nil {
				return err
			}
			defer closeFn()

			results, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			summary := scan.Summarize(results)

			if ctx.jsonMode() {
				if err := writeJSON(cmd, struct {
					Results []scan.Result `json:"results"`
					Summary scan.Summary  `json:"summary"`
				}{results, summary}); err != nil {
					return err
				}
			} else {
				printScanResults(cmd.OutOrStdout(), results, true)
				fmt.Fprintf(cmd.OutOrStdout(), "%d scanned, %d cached, %d failed, %d maps\n",
					summary.Scanned, summary.Cached, summary.Failed, summary.Maps)
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d archives failed", summary.Failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-extract archives already in the catalog")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override scan.workers")
	return cmd
}

// newRunner wires a scan runner to the configured catalog. The returned
// function closes the catalog.
func (c *commandContext) newRunner(opts ...scan.Option) (*scan.Runner, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.openCatalog()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if store != nil {
			_ = store.Close()
		}
	}
	return scan.NewRunner(cfg, store, logger, opts...), closeFn, nil
}

func printScanResults(out io.Writer, results []scan.Result, asTable bool) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No archives found")
		return
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "scanned"
		switch {
		case r.Err != nil:
			status = "error: " + r.Err.Error()
		case r.Cached:
			status = "cached"
		}
		rows = append(rows, []string{r.Path, strconv.Itoa(len(r.Names)), status})
	}
	if !asTable {
		for _, row := range rows {
			fmt.Fprintf(out, "%s: %s maps (%s)\n", row[0], row[1], row[2])
		}
		return
	}
	fmt.Fprintln(out, renderTable([]string{"Path", "Maps", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}
