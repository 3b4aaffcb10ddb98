package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/responsive"
)

var breakpointCols bool

var breakpointCmd = &cobra.Command{
	Use:   "breakpoint <width>",
	Short: "Classify a viewport width",
	Long: `Print the breakpoint, device range and container width for a viewport.

The width is in px unless --cols is given, in which case it is converted
with viewport.cell_width.

Examples:
  tint breakpoint 800
  tint breakpoint --cols 120`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("width must be a non-negative integer, got %q", args[0])
		}
		px := n
		if breakpointCols {
			px = n * cfg.Viewport.CellWidth
		}

		bp := observer.FromWidth(px)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%dpx: %s (%s), container %dpx\n",
			px, bp, deviceOf(px), responsive.ContainerWidth(bp, px))
		return err
	},
}

func init() {
	breakpointCmd.Flags().BoolVar(&breakpointCols, "cols", false, "width is in terminal columns")
	rootCmd.AddCommand(breakpointCmd)
}

func deviceOf(px int) string {
	switch {
	case responsive.IsDesktop(px):
		return "desktop"
	case responsive.IsTablet(px):
		return "tablet"
	}
	return "mobile"
}
