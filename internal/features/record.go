package features

import "context"

const (
	// MFCCCoefficients is the fixed MFCC vector length.
	MFCCCoefficients = 13
	// ChromaBins is the fixed pitch-class vector length.
	ChromaBins = 12
)

// Record is an immutable snapshot of a track's extracted features. Zero
// values mean no signal; BPM and Key are nil when unknown.
type Record struct {
	BPM              *float64                  `json:"bpm,omitempty"`
	Key              *string                   `json:"key,omitempty"`
	Duration         float64                   `json:"duration"`
	SpectralCentroid float64                   `json:"spectral_centroid"`
	SpectralRolloff  float64                   `json:"spectral_rolloff"`
	SpectralFlux     float64                   `json:"spectral_flux"`
	ZeroCrossingRate float64                   `json:"zero_crossing_rate"`
	RMSEnergy        float64                   `json:"rms_energy"`
	MFCC             [MFCCCoefficients]float64 `json:"mfcc"`
	Chroma           [ChromaBins]float64       `json:"chroma"`
	OnsetStrength    float64                   `json:"onset_strength"`
	TempoStability   float64                   `json:"tempo_stability"`
}

// BPMValue returns the tempo and whether it is known.
func (r Record) BPMValue() (float64, bool) {
	if r.BPM == nil || *r.BPM <= 0 {
		return 0, false
	}
	return *r.BPM, true
}

// KeyValue returns the musical key and whether it is known.
func (r Record) KeyValue() (string, bool) {
	if r.Key == nil || *r.Key == "" {
		return "", false
	}
	return *r.Key, true
}

// Float returns a pointer to v, for optional Record fields.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v, for optional Record fields.
func String(v string) *string { return &v }

// Extractor produces a Record for the audio file at path.
type Extractor interface {
	Extract(ctx context.Context, path string) (Record, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (Record, error)

// Extract calls f(ctx, path).
func (f ExtractorFunc) Extract(ctx context.Context, path string) (Record, error) {
	return f(ctx, path)
}
