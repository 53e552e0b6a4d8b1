package synthesis

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed heuristics.yaml
var defaultHeuristicsYAML []byte

// BetFamily names one strategic-bet bucket and the keywords that route an
// opportunity into it.
type BetFamily struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Heuristics carries the tunable constants of the synthesis core. The values
// are behavioral defaults preserved for parity with production output, not
// derived from first principles.
type Heuristics struct {
	SimilarityThreshold float64     `yaml:"similarity_threshold" json:"similarity_threshold"`
	SummaryPrefixLen    int         `yaml:"summary_prefix_len" json:"summary_prefix_len"`
	StruggleVocabulary  []string    `yaml:"struggle_vocabulary" json:"struggle_vocabulary"`
	BetFamilies         []BetFamily `yaml:"bet_families" json:"bet_families"`
}

// DefaultHeuristics parses the embedded defaults.
func DefaultHeuristics() Heuristics {
	var h Heuristics
	if err := yaml.Unmarshal(defaultHeuristicsYAML, &h); err != nil {
		return Heuristics{SimilarityThreshold: 0.6, SummaryPrefixLen: 160}
	}
	return h.normalized()
}

// LoadHeuristics reads overrides from a YAML file at the given path. Fields
// left unset fall back to the embedded defaults.
func LoadHeuristics(path string) (Heuristics, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Heuristics{}, fmt.Errorf("read heuristics %s: %w", path, err)
	}
	h := DefaultHeuristics()
	if err := yaml.Unmarshal(raw, &h); err != nil {
		return Heuristics{}, fmt.Errorf("parse heuristics %s: %w", path, err)
	}
	return h.normalized(), nil
}

func (h Heuristics) normalized() Heuristics {
	if h.SimilarityThreshold <= 0 || h.SimilarityThreshold > 1 {
		h.SimilarityThreshold = 0.6
	}
	if h.SummaryPrefixLen <= 0 {
		h.SummaryPrefixLen = 160
	}
	return h
}

// Compressor builds a Compressor wired with these heuristics.
func (h Heuristics) Compressor() Compressor {
	return Compressor{
		SimilarityThreshold: h.SimilarityThreshold,
		SummaryPrefixLen:    h.SummaryPrefixLen,
	}
}
