package analysis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tagwise/internal/classify"
	"tagwise/internal/config"
	"tagwise/internal/features"
	"tagwise/internal/logging"
	"tagwise/internal/prompt"
	"tagwise/internal/services"
	"tagwise/internal/services/llm"
	"tagwise/internal/taxonomy"
)

// ErrDisabled is returned when analysis is switched off in the configuration.
var ErrDisabled = services.Wrap(services.ErrConfiguration, "analysis", "analyze", "analysis disabled", nil)

// Analyzer orchestrates feature extraction, classification and LLM
// augmentation. It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	cfg       config.AIConfig
	extractor features.Extractor
	generator llm.TextGenerator
	genres    *classify.GenreClassifier
	moods     *classify.MoodClassifier
	energy    *classify.EnergyAnalyzer
	taxonomy  *taxonomy.Mapper
	logger    *slog.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithGenerator sets the LLM used for tag suggestions. Without one New builds
// a provider client from cfg.API whenever an API key is configured.
func WithGenerator(gen llm.TextGenerator) Option {
	return func(a *Analyzer) {
		a.generator = gen
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New constructs an Analyzer.
func New(cfg config.AIConfig, extractor features.Extractor, opts ...Option) (*Analyzer, error) {
	if extractor == nil {
		return nil, errors.New("analysis: feature extractor required")
	}
	a := &Analyzer{
		cfg:       cfg,
		extractor: extractor,
		genres:    classify.NewGenreClassifier(cfg),
		moods:     classify.NewMoodClassifier(cfg),
		energy:    classify.NewEnergyAnalyzer(cfg),
		taxonomy:  taxonomy.NewMapper(cfg.CustomTags),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.generator == nil && cfg.HasAPIKey() {
		gen, err := llm.New(llm.ConfigFromAPI(cfg.API))
		if err != nil {
			return nil, err
		}
		a.generator = gen
	}
	a.logger = logging.NewComponentLogger(a.logger, "analysis")
	return a, nil
}

// AnalyzeTrack runs the pipeline for the audio file at path.
func (a *Analyzer) AnalyzeTrack(ctx context.Context, path string) (Result, error) {
	if !a.cfg.Enabled {
		return Result{}, ErrDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithTrack(ctx, path)
	logger := logging.WithContext(ctx, a.logger)
	start := time.Now()

	rec, err := a.extractor.Extract(ctx, path)
	if err != nil {
		if errors.Is(err, services.ErrExtraction) {
			return Result{}, err
		}
		return Result{}, services.Wrap(services.ErrExtraction, "analysis", "extract features", path, err)
	}

	result := Result{
		Genres:         []classify.Tag{},
		Moods:          []classify.Tag{},
		CustomTags:     []classify.Tag{},
		Features:       rec,
		LLMSuggestions: []string{},
	}

	if a.cfg.EnableGenreClassification {
		result.Genres = a.limit(a.genres.Classify(rec))
	}
	if a.cfg.EnableMoodDetection {
		result.Moods = a.limit(a.moods.Classify(rec))
	}
	if a.cfg.EnableEnergyAnalysis {
		energy := a.energy.Analyze(rec)
		result.EnergyLevel = &energy.Level
		result.Danceability = &energy.Danceability
		result.Aggression = &energy.Aggression
	}

	if a.cfg.HasAPIKey() && a.generator != nil {
		a.suggest(ctx, logger, &result)
	} else {
		logger.Debug("llm suggestions skipped", logging.Bool("api_key", a.cfg.HasAPIKey()))
	}

	if !a.taxonomy.Empty() {
		result.CustomTags = nonNil(capTags(
			a.taxonomy.Map(result.Genres, result.Moods, result.LLMSuggestions),
			a.cfg.MaxTagsPerTrack,
		))
	}

	result.Confidence = overallConfidence(result.Genres, result.Moods, result.CustomTags)

	logger.Info("track analyzed",
		logging.Strings("genres", classify.Names(result.Genres)),
		logging.Strings("moods", classify.Names(result.Moods)),
		logging.Strings("custom", classify.Names(result.CustomTags)),
		logging.Float64("confidence", result.Confidence),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// limit applies the single-label and max-tags settings to a classifier's
// output.
func (a *Analyzer) limit(tags []classify.Tag) []classify.Tag {
	if !a.cfg.MultiLabel {
		tags = strongest(tags)
	}
	return nonNil(capTags(tags, a.cfg.MaxTagsPerTrack))
}

// suggest asks the LLM for tags. A failure leaves result untouched.
func (a *Analyzer) suggest(ctx context.Context, logger *slog.Logger, result *Result) {
	in := prompt.Input{
		Features:     result.Features,
		Genres:       result.Genres,
		Moods:        result.Moods,
		EnergyLevel:  result.EnergyLevel,
		CustomGenres: a.cfg.CustomTags.Genres,
	}
	text := prompt.Build(in)
	logger.Debug("requesting llm suggestions",
		logging.String("provider", string(a.cfg.API.Provider)),
		logging.Int("prompt_bytes", len(text)),
	)

	raw, err := a.generator.Generate(ctx, text)
	if err != nil {
		logging.WarnWithContext(logger, "llm suggestions unavailable", "llm_suggestions_failed",
			logging.String("provider", string(a.cfg.API.Provider)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.String(logging.FieldImpact, "track tagged from rule-based classifiers only"),
		)
		return
	}

	parsed := prompt.Parse(raw)
	result.Description = parsed.Description
	result.LLMSuggestions = parsed.Tags
	logger.Debug("llm suggestions received", logging.Strings("suggestions", parsed.Tags))
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return "check api.provider, api.api_key and api.endpoint"
	case errors.Is(err, services.ErrTimeout):
		return "raise api.timeout_seconds or try again later"
	default:
		return "check provider status and network connectivity"
	}
}
