package vectordb

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpus []byte

type corpusFile struct {
	Documents []Document `yaml:"documents"`
}

// LoadCorpus reads the corpus at path, or the built-in sample corpus when
// path is empty.
func LoadCorpus(path string) ([]Document, error) {
	raw := defaultCorpus
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read corpus: %w", err)
		}
	}
	return ParseCorpus(raw)
}

// ParseCorpus decodes a YAML corpus and checks every entry.
func ParseCorpus(raw []byte) ([]Document, error) {
	var f corpusFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	seen := make(map[string]bool, len(f.Documents))
	for i, d := range f.Documents {
		switch {
		case d.ID == "":
			return nil, fmt.Errorf("document %d: id is required", i+1)
		case seen[d.ID]:
			return nil, fmt.Errorf("document %d: duplicate id %q", i+1, d.ID)
		case d.Title == "":
			return nil, fmt.Errorf("document %q: title is required", d.ID)
		case d.Similarity < 0 || d.Similarity > 1:
			return nil, fmt.Errorf("document %q: similarity %.2f is outside [0,1]", d.ID, d.Similarity)
		}
		seen[d.ID] = true
	}
	return f.Documents, nil
}
