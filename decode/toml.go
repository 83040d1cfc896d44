package decode

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ecsim/ecsim"
)

// ParseTOML parses a TOML config.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// DecodeTOML parses and builds a model from a TOML config.
func (d *Decoder) DecodeTOML(data []byte) (*ecsim.Model, error) {
	cfg, err := ParseTOML(data)
	if err != nil {
		return nil, err
	}
	return d.Decode(cfg)
}
