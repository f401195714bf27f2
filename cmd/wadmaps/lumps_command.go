package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wadmaps/internal/scan"
	"wadmaps/internal/wad"
)

type lumpRow struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
	Role   string `json:"role,omitempty"`
}

func newLumpsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lumps <file>",
		Short: "List the directory of one archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := scan.ReadLimited(args[0], cfg.MaxFileBytes())
			if err != nil {
				return err
			}
			archive, err := wad.Open(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			lumps := describeLumps(archive)
			if ctx.jsonMode() {
				return writeJSON(cmd, lumps)
			}

			rows := make([][]string, 0, len(lumps))
			for _, l := range lumps {
				rows = append(rows, []string{
					strconv.Itoa(l.Index),
					l.Name,
					strconv.FormatInt(l.Offset, 10),
					strconv.FormatInt(l.Size, 10),
					l.Role,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d lumps, maps: %s\n", args[0], archive.Header.Kind, len(archive.Lumps), joinOrDash(archive.Slots()))
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Name", "Offset", "Size", "Role"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

// describeLumps labels each directory entry with the part it plays in name
// resolution. Only the last copy of a metadata lump is used.
func describeLumps(archive *wad.Archive) []lumpRow {
	slots := make(map[string]struct{})
	for _, slot := range archive.Slots() {
		slots[slot] = struct{}{}
	}
	aux := archive.Aux()

	rows := make([]lumpRow, 0, len(archive.Lumps))
	for _, lump := range archive.Lumps {
		upper := strings.ToUpper(lump.Name)
		var role string
		switch {
		case hasKey(slots, upper):
			role = "map marker"
		case wad.IsMapDataLump(upper):
			role = "map data"
		default:
			if used, ok := aux[upper]; ok {
				role = "metadata"
				if used.Index != lump.Index {
					role = "metadata (superseded)"
				}
			}
		}
		if lump.End() > archive.Size() {
			role = strings.TrimSpace(role + " out of range")
		}
		rows = append(rows, lumpRow{
			Index:  lump.Index,
			Name:   lump.Name,
			Offset: lump.Offset,
			Size:   lump.Size,
			Role:   role,
		})
	}
	return rows
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
