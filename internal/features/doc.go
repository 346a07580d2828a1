// Package features defines the per-track audio feature record consumed by the
// classifiers and the collaborator interface that produces it.
//
// Computing spectral features from raw audio is outside tagwise. FileExtractor
// reads a `<track>.features.json` sidecar written by an external analyzer when
// one exists; otherwise it fills BPM and key from embedded tags and duration
// from ffprobe, leaving spectral fields at zero ("no signal").
package features
