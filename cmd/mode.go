package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/theme"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change the stored appearance preference",
	Long: `Show or change the light/dark/system preference.

The preference is stored in the configured backend and is shared with the
interactive showcase. "system" follows the OS color scheme.

Examples:
  tint mode get
  tint mode set dark
  tint mode toggle`,
}

var modeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored mode and the resolved appearance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context(), cfg, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.close()

		return printState(cmd.OutOrStdout(), rt.engine.State())
	},
}

var modeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Store a mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := theme.ParseMode(args[0])
		if !ok {
			return fmt.Errorf("unknown mode %q (want %s)", args[0], strings.Join(modeNames(), ", "))
		}

		rt, err := newRuntime(cmd.Context(), cfg, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.close()

		rt.engine.SetMode(mode)
		return printState(cmd.OutOrStdout(), rt.engine.State())
	},
}

var modeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Advance light → dark → system → light",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context(), cfg, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.close()

		rt.engine.Toggle()
		return printState(cmd.OutOrStdout(), rt.engine.State())
	},
}

func init() {
	modeCmd.AddCommand(modeGetCmd, modeSetCmd, modeToggleCmd)
	rootCmd.AddCommand(modeCmd)
}

func modeNames() []string {
	modes := theme.Modes()
	names := make([]string, 0, len(modes))
	for _, m := range modes {
		names = append(names, m.String())
	}
	return names
}

func printState(w io.Writer, s theme.State) error {
	_, err := fmt.Fprintf(w, "%s (%s appearance)\n", s.Mode, s.Appearance())
	return err
}
