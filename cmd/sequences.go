package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tint/internal/anim"
)

var sequencesJSON bool

var sequencesCmd = &cobra.Command{
	Use:   "sequences",
	Short: "List the animation sequences the showcase can play",
	Long: `List built-in sequences and those loaded from the sequences directory.

A user file with the same name as a built-in replaces it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		seqs, err := anim.LoadCatalog(cfg.Animation.ResolvedSequencesDir())
		if err != nil {
			return fmt.Errorf("loading sequences: %w", err)
		}
		if sequencesJSON {
			return renderSequencesJSON(cmd, seqs)
		}
		return renderSequencesTable(cmd, seqs)
	},
}

func init() {
	sequencesCmd.Flags().BoolVar(&sequencesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(sequencesCmd)
}

func renderSequencesTable(cmd *cobra.Command, seqs []*anim.Sequence) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSTEPS\tSOURCE\tDESCRIPTION")
	for _, s := range seqs {
		marker := ""
		if s.Name == cfg.Animation.DefaultSequence {
			marker = " *"
		}
		fmt.Fprintf(writer, "%s%s\t%d\t%s\t%s\n", s.Name, marker, len(s.Steps), s.Source, s.Description)
	}
	return writer.Flush()
}

type sequenceJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
	Source      string `json:"source"`
	Default     bool   `json:"default"`
}

func renderSequencesJSON(cmd *cobra.Command, seqs []*anim.Sequence) error {
	payload := make([]sequenceJSON, len(seqs))
	for i, s := range seqs {
		payload[i] = sequenceJSON{
			Name:        s.Name,
			Description: s.Description,
			Steps:       len(s.Steps),
			Source:      s.Source,
			Default:     s.Name == cfg.Animation.DefaultSequence,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
