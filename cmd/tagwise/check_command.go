package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagwise/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		ffprobe    string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify directories, ffprobe and provider access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			stack, err := buildGenerator(cfg, logger, false)
			if err != nil {
				return err
			}
			defer stack.Close()

			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{
				Generator:     stack.generator,
				FFprobeBinary: ffprobe,
			})

			if wantJSON(cmd, jsonOutput) {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					status := "ok"
					switch {
					case !r.Passed && r.Optional:
						status = "warn"
					case !r.Passed:
						status = "fail"
					}
					rows = append(rows, []string{r.Name, status, r.Detail})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable("Checks", []string{"Check", "Status", "Detail"}, rows, nil))
			}
			if preflight.Failed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	cmd.Flags().StringVar(&ffprobe, "ffprobe", "", "ffprobe binary to look for")
	return cmd
}
