// Package classify maps a features.Record onto confidence-scored tag
// candidates with fixed threshold rules.
//
// GenreClassifier and MoodClassifier return tags already filtered to the
// configured confidence threshold; EnergyAnalyzer returns three [0,100]
// scores. None of them fail: a missing optional feature only suppresses the
// rules that depend on it. The thresholds come from config.Rules and are
// hand-tuned defaults rather than values fitted to a corpus.
package classify
