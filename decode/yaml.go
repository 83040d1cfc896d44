package decode

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ecsim/ecsim"
)

// ParseYAML parses a YAML config.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// DecodeYAML parses and builds a model from a YAML config.
func (d *Decoder) DecodeYAML(data []byte) (*ecsim.Model, error) {
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return d.Decode(cfg)
}
