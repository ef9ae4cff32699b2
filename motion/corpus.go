package motion

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Corpus is a skeleton with the clips recorded on it.
type Corpus struct {
	Skeleton Skeleton `yaml:"skeleton"`
	Clips    []Clip   `yaml:"clips"`
}

// Clip looks a clip up by name.
func (c Corpus) Clip(name string) (Clip, bool) {
	for _, cl := range c.Clips {
		if cl.Name == name {
			return cl, true
		}
	}
	return Clip{}, false
}

// Validate checks the skeleton and every frame of every clip.
func (c Corpus) Validate() error {
	if err := c.Skeleton.Validate(); err != nil {
		return err
	}
	for _, cl := range c.Clips {
		for i, f := range cl.Frames {
			if err := c.Skeleton.CheckFrame(f); err != nil {
				return fmt.Errorf("clip %q frame %d: %w", cl.Name, i, err)
			}
		}
	}
	return nil
}

// DecodeCorpus parses and validates a YAML corpus.
func DecodeCorpus(data []byte) (Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Corpus{}, fmt.Errorf("motion: parse corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Corpus{}, err
	}
	return c, nil
}

// LoadCorpus reads a YAML corpus file.
func LoadCorpus(path string) (Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("motion: read corpus: %w", err)
	}
	return DecodeCorpus(data)
}

// EncodeSequence renders a sequence as YAML.
func EncodeSequence(s Sequence) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("motion: encode sequence: %w", err)
	}
	return data, nil
}

// DecodeSequence parses a YAML sequence.
func DecodeSequence(data []byte) (Sequence, error) {
	var s Sequence
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sequence{}, fmt.Errorf("motion: parse sequence: %w", err)
	}
	return s, nil
}
