package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/synapseiq/site/sampledata"
)

func newGenerateCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print sample testimonials as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := sampledata.Generate(count, seed, time.Now())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"testimonials": records,
				"metadata": map[string]any{
					"total_count": len(records),
					"has_more":    false,
				},
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 100, "number of testimonials")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}
