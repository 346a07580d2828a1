package features

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// SidecarSuffix is appended to a track path to locate its feature sidecar.
const SidecarSuffix = ".features.json"

// SidecarPath returns the sidecar location for trackPath.
func SidecarPath(trackPath string) string {
	return trackPath + SidecarSuffix
}

type sidecarPayload struct {
	BPM              *float64  `json:"bpm"`
	Key              *string   `json:"key"`
	Duration         float64   `json:"duration"`
	SpectralCentroid float64   `json:"spectral_centroid"`
	SpectralRolloff  float64   `json:"spectral_rolloff"`
	SpectralFlux     float64   `json:"spectral_flux"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate"`
	RMSEnergy        float64   `json:"rms_energy"`
	MFCC             []float64 `json:"mfcc"`
	Chroma           []float64 `json:"chroma"`
	OnsetStrength    float64   `json:"onset_strength"`
	TempoStability   float64   `json:"tempo_stability"`
}

// LoadSidecar decodes a feature sidecar file.
func LoadSidecar(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read sidecar: %w", err)
	}
	return DecodeSidecar(data)
}

// DecodeSidecar validates and converts sidecar JSON into a Record. Vectors
// must either be omitted or carry exactly the fixed number of values.
// A non-positive BPM is treated as unknown.
func DecodeSidecar(data []byte) (Record, error) {
	var payload sidecarPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Record{}, fmt.Errorf("decode sidecar: %w", err)
	}

	rec := Record{
		Duration:         payload.Duration,
		SpectralCentroid: payload.SpectralCentroid,
		SpectralRolloff:  payload.SpectralRolloff,
		SpectralFlux:     payload.SpectralFlux,
		ZeroCrossingRate: payload.ZeroCrossingRate,
		RMSEnergy:        payload.RMSEnergy,
		OnsetStrength:    payload.OnsetStrength,
		TempoStability:   payload.TempoStability,
	}
	if payload.BPM != nil && *payload.BPM > 0 && !math.IsInf(*payload.BPM, 0) {
		rec.BPM = Float(*payload.BPM)
	}
	if payload.Key != nil {
		if key := strings.TrimSpace(*payload.Key); key != "" {
			rec.Key = String(key)
		}
	}
	if rec.Duration < 0 {
		return Record{}, fmt.Errorf("decode sidecar: duration must be >= 0, got %v", rec.Duration)
	}
	if err := copyVector(rec.MFCC[:], payload.MFCC, "mfcc"); err != nil {
		return Record{}, err
	}
	if err := copyVector(rec.Chroma[:], payload.Chroma, "chroma"); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func copyVector(dst, src []float64, name string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("decode sidecar: %s must have %d values, got %d", name, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}
