package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wadmaps/internal/mapnames"
	"wadmaps/internal/scan"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the map names found in one archive",
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

			data, err := scan.ReadLimited(args[0], cfg.MaxFileBytes())
			if err != nil {
				return err
			}
			report, err := mapnames.New(logger).Report(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d lumps, %d maps\n", args[0], report.Kind, report.LumpCount, len(report.Slots))
			if len(report.Slots) == 0 {
				fmt.Fprintln(out, "No maps found")
			} else {
				rows := make([][]string, 0, len(report.Slots))
				for _, slot := range report.Names.Slots() {
					rows = append(rows, []string{slot, report.Names[slot]})
				}
				fmt.Fprintln(out, renderTable([]string{"Slot", "Name"}, rows, nil))
			}
			if showSources {
				fmt.Fprintln(out, renderSources(report.Sources))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSources, "sources", false, "Also list which metadata lumps were found and applied")
	return cmd
}

func renderSources(sources []mapnames.SourceStatus) string {
	rows := make([][]string, 0, len(sources))
	for _, src := range sources {
		state := "absent"
		switch {
		case src.Found && !src.Readable:
			state = "out of range"
		case src.Found:
			state = "applied"
		}
		rows = append(rows, []string{src.Lump, state, fmt.Sprintf("%d", src.Patches)})
	}
	return renderTable([]string{"Lump", "State", "Patches"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
