package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tagwise/internal/analysis"
	"tagwise/internal/config"
	"tagwise/internal/features"
	"tagwise/internal/logging"
	"tagwise/internal/services/llm"
)

type analyzeOutput struct {
	Track         string           `json:"track"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	Result        *analysis.Result `json:"result,omitempty"`
	Error         string           `json:"error,omitempty"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		workers    int
		ffprobe    string
	)

	cmd := &cobra.Command{
		Use:   "analyze <track> [track...]",
		Short: "Analyze audio files and print suggested tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			warnMissingAPIKey(logger, cfg)

			stack, err := buildGenerator(cfg, logger, true)
			if err != nil {
				return err
			}
			defer stack.Close()

			extractorOpts := []features.Option{features.WithLogger(logger)}
			if strings.TrimSpace(ffprobe) != "" {
				extractorOpts = append(extractorOpts, features.WithFFprobeBinary(ffprobe))
			}
			opts := []analysis.Option{analysis.WithLogger(logger)}
			if stack.generator != nil {
				opts = append(opts, analysis.WithGenerator(stack.generator))
			}
			analyzer, err := analysis.New(cfg.AI(), features.NewFileExtractor(extractorOpts...), opts...)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = cfg.Batch.Workers
			}
			items := analyzer.Batch(cmd.Context(), args, workers)

			if wantJSON(cmd, jsonOutput) {
				if err := writeJSON(cmd, toAnalyzeOutput(items)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), renderAnalyzeTable(items))
			}
			return batchError(items)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON even on a terminal")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent analyses (defaults to batch.workers)")
	cmd.Flags().StringVar(&ffprobe, "ffprobe", "", "ffprobe binary used for duration probing")
	return cmd
}

func warnMissingAPIKey(logger *slog.Logger, cfg *config.Config) {
	if cfg.AI().HasAPIKey() {
		return
	}
	info := llm.Info(cfg.API.Provider)
	hint := "set api.api_key or export TAGWISE_API_KEY"
	if env := cfg.API.Provider.APIKeyEnv(); env != "" {
		hint = fmt.Sprintf("set api.api_key or export TAGWISE_API_KEY / %s", env)
	}
	if info.KeyURL != "" {
		hint += "; get a key at " + info.KeyURL
	}
	logging.WarnWithContext(logger, "no api key configured", "api_key_missing",
		logging.String("provider", info.DisplayName),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "llm suggestions disabled; rule-based tags only"),
	)
}

func toAnalyzeOutput(items []analysis.BatchItem) []analyzeOutput {
	out := make([]analyzeOutput, 0, len(items))
	for _, item := range items {
		entry := analyzeOutput{Track: item.Path, CorrelationID: item.CorrelationID}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		} else {
			result := item.Result
			entry.Result = &result
		}
		out = append(out, entry)
	}
	return out
}

func renderAnalyzeTable(items []analysis.BatchItem) string {
	headers := []string{"Track", "Genres", "Moods", "Custom", "Energy", "Dance", "Conf", "Suggestions"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		name := filepath.Base(item.Path)
		if item.Err != nil {
			rows = append(rows, []string{name, "error: " + item.Err.Error()})
			continue
		}
		r := item.Result
		rows = append(rows, []string{
			name,
			formatTags(r.Genres),
			formatTags(r.Moods),
			formatTags(r.CustomTags),
			formatScore(r.EnergyLevel),
			formatScore(r.Danceability),
			fmt.Sprintf("%.0f%%", r.Confidence*100),
			formatList(r.LLMSuggestions),
		})
	}
	return renderTable("", headers, rows, aligns) + "\n"
}

func batchError(items []analysis.BatchItem) error {
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	if len(items) == 1 {
		return items[0].Err
	}
	return fmt.Errorf("%d of %d tracks failed analysis", failed, len(items))
}
