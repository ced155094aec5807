// Package vocab holds the static vocabulary the router matches against:
// the service-type catalogue and the department directory. Both are
// order-sensitive: when several names occur in one utterance, the first
// entry wins.
package vocab

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var vocabRaw []byte

type Department struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Vocabulary struct {
	ServiceTypes []string     `yaml:"service_types"`
	Departments  []Department `yaml:"departments"`
}

// Load parses the embedded vocabulary file.
func Load() (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(vocabRaw, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(v.ServiceTypes) == 0 {
		return nil, errors.New("vocabulary has no service types")
	}
	if len(v.Departments) == 0 {
		return nil, errors.New("vocabulary has no departments")
	}
	for i, d := range v.Departments {
		if d.Name == "" {
			return nil, fmt.Errorf("department %d has no name", i)
		}
	}
	return &v, nil
}

// MustLoad is Load, panicking on failure. The file is embedded at
// compile time, so a failure here is a build defect.
func MustLoad() *Vocabulary {
	v, err := Load()
	if err != nil {
		panic(err)
	}
	return v
}
