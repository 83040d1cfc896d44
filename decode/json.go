package decode

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ecsim/ecsim"
)

//go:embed schema.json
var configSchema string

var compiledSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// ValidateJSON checks raw JSON against the config schema without building
// anything.
func ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// ParseJSON validates raw JSON against the config schema and parses it.
func ParseJSON(data []byte) (*Config, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// DecodeJSON validates, parses and builds a model from a JSON config.
func (d *Decoder) DecodeJSON(data []byte) (*ecsim.Model, error) {
	cfg, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return d.Decode(cfg)
}
