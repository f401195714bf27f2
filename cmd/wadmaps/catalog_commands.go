package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wadmaps/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and maintain the scan catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))
	catalogCmd.AddCommand(newCatalogClearCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scanned archives, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				if records == nil {
					records = []*catalog.Record{}
				}
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for i, rec := range records {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					shortHash(rec.SHA256),
					rec.Kind,
					strconv.Itoa(len(rec.Names)),
					humanize.IBytes(uint64(rec.SizeBytes)),
					humanize.Time(rec.ScannedAt),
					rec.Path,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "SHA256", "Kind", "Maps", "Size", "Scanned", "Path"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <sha|number>",
		Short: "Show the map names stored for one archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, rec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SHA256:  %s\n", rec.SHA256)
			fmt.Fprintf(out, "Path:    %s\n", rec.Path)
			fmt.Fprintf(out, "Kind:    %s, %d lumps, %s\n", rec.Kind, rec.LumpCount, humanize.IBytes(uint64(rec.SizeBytes)))
			fmt.Fprintf(out, "Scanned: %s\n", rec.ScannedAt.Local().Format("2006-01-02 15:04:05"))
			rows := make([][]string, 0, len(rec.Names))
			for _, slot := range rec.Names.Slots() {
				rows = append(rows, []string{slot, rec.Names[slot]})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No maps found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Slot", "Name"}, rows, nil))
			return nil
		},
	}
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sha|number>",
		Short: "Forget one archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := store.Remove(cmd.Context(), rec.SHA256); err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]any{"removed": rec.SHA256})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", shortHash(rec.SHA256), rec.Path)
			return nil
		},
	}
}

func newCatalogClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every archive from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.requireCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]any{"removed": removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d archives\n", removed)
			return nil
		},
	}
}
