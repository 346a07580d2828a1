package features

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"tagwise/internal/logging"
	"tagwise/internal/media/ffprobe"
	"tagwise/internal/services"
)

// ProbeFunc inspects a media file; ffprobe.Inspect satisfies it.
type ProbeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// FileExtractor builds Records from files on disk.
type FileExtractor struct {
	ffprobeBinary string
	probe         ProbeFunc
	logger        *slog.Logger
}

// Option configures a FileExtractor.
type Option func(*FileExtractor)

// WithFFprobeBinary overrides the ffprobe executable.
func WithFFprobeBinary(binary string) Option {
	return func(e *FileExtractor) {
		e.ffprobeBinary = strings.TrimSpace(binary)
	}
}

// WithProbe replaces the ffprobe invocation, mainly for tests. A nil probe
// disables probing.
func WithProbe(probe ProbeFunc) Option {
	return func(e *FileExtractor) {
		e.probe = probe
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *FileExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewFileExtractor returns an extractor that shells out to ffprobe by default.
func NewFileExtractor(opts ...Option) *FileExtractor {
	e := &FileExtractor{
		ffprobeBinary: "ffprobe",
		probe:         ffprobe.Inspect,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = logging.NewComponentLogger(e.logger, "features")
	return e
}

// Extract returns the Record for path. A missing or unreadable track is an
// extraction error; missing tags or an unavailable ffprobe only leave the
// corresponding fields unset.
func (e *FileExtractor) Extract(ctx context.Context, path string) (Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Record{}, services.Wrap(services.ErrExtraction, "features", "extract", "empty track path", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Record{}, services.Wrap(services.ErrExtraction, "features", "stat", path, err)
	}
	if info.IsDir() {
		return Record{}, services.Wrap(services.ErrExtraction, "features", "stat", path+" is a directory", nil)
	}
	logger := logging.WithContext(ctx, e.logger)

	sidecar := SidecarPath(path)
	rec, err := LoadSidecar(sidecar)
	switch {
	case err == nil:
		logger.Debug("features loaded from sidecar", logging.String("sidecar_path", sidecar))
		return rec, nil
	case !errors.Is(err, fs.ErrNotExist):
		return Record{}, services.Wrap(services.ErrExtraction, "features", "sidecar", sidecar, err)
	}

	tags, err := readEmbeddedTags(path)
	switch {
	case err == nil:
		rec.BPM = tags.BPM
		rec.Key = tags.Key
	case errors.Is(err, fs.ErrPermission):
		return Record{}, services.Wrap(services.ErrExtraction, "features", "open", path, err)
	default:
		logger.Debug("embedded tags unavailable", logging.Error(err))
	}

	if e.probe != nil {
		e.applyProbe(ctx, logger, path, &rec)
	}
	return rec, nil
}

func (e *FileExtractor) applyProbe(ctx context.Context, logger *slog.Logger, path string, rec *Record) {
	result, err := e.probe(ctx, e.ffprobeBinary, path)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.WarnWithContext(logger, "ffprobe inspection failed; duration unknown", "ffprobe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install ffprobe or write a features sidecar"),
			logging.String(logging.FieldImpact, "duration and tag fallbacks skipped"),
		)
		return
	}
	rec.Duration = result.DurationSeconds()
	if rec.BPM == nil {
		if value, ok := result.Tag("bpm", "tbpm", "tempo"); ok {
			if bpm := parseBPMString(value); bpm > 0 {
				rec.BPM = Float(bpm)
			}
		}
	}
	if rec.Key == nil {
		if value, ok := result.Tag("initialkey", "key", "tkey"); ok {
			rec.Key = String(value)
		}
	}
}
