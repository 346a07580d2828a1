package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagwise/internal/services/llm"
)

func newProvidersCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "providers",
		Short:       "List supported text-generation providers",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := llm.All()
			if wantJSON(cmd, jsonOutput) {
				return writeJSON(cmd, infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					string(info.Provider),
					info.DisplayName,
					firstNonEmpty(info.Model, "-"),
					firstNonEmpty(info.FreeTier, "-"),
					firstNonEmpty(info.KeyURL, "-"),
				})
			}
			table := renderTable("Providers", []string{"Name", "Display", "Default Model", "Free Tier", "API Key"}, rows, nil)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	return cmd
}
