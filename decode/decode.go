// Package decode builds runnable models from declarative config files.
// Configs name a model, its systems and its agent populations; a Registry
// maps those names to factories. JSON configs are validated against an
// embedded schema; YAML and TOML are decoded structurally.
package decode

import (
	"fmt"

	"github.com/ecsim/ecsim"
)

// HookConfig names a registered hook and its parameters.
type HookConfig struct {
	Func   string `json:"func" yaml:"func" toml:"func"`
	Params Params `json:"params" yaml:"params" toml:"params"`
}

// ObjectConfig describes one model or system to build by name.
type ObjectConfig struct {
	Name     string      `json:"name" yaml:"name" toml:"name"`
	Params   Params      `json:"params" yaml:"params" toml:"params"`
	PreInit  *HookConfig `json:"pre_init,omitempty" yaml:"pre_init,omitempty" toml:"pre_init"`
	PostInit *HookConfig `json:"post_init,omitempty" yaml:"post_init,omitempty" toml:"post_init"`
}

// AgentConfig describes one agent population: a factory name invoked
// Number times with the agent's index.
type AgentConfig struct {
	Name     string      `json:"name" yaml:"name" toml:"name"`
	Number   int         `json:"number" yaml:"number" toml:"number"`
	Params   Params      `json:"params" yaml:"params" toml:"params"`
	PreInit  *HookConfig `json:"pre_init,omitempty" yaml:"pre_init,omitempty" toml:"pre_init"`
	PostInit *HookConfig `json:"post_init,omitempty" yaml:"post_init,omitempty" toml:"post_init"`
}

// Config is a full model description.
type Config struct {
	Model      ObjectConfig   `json:"model" yaml:"model" toml:"model"`
	Systems    []ObjectConfig `json:"systems,omitempty" yaml:"systems,omitempty" toml:"systems"`
	Agents     []AgentConfig  `json:"agents,omitempty" yaml:"agents,omitempty" toml:"agents"`
	PreDecode  *HookConfig    `json:"pre_decode,omitempty" yaml:"pre_decode,omitempty" toml:"pre_decode"`
	PostDecode *HookConfig    `json:"post_decode,omitempty" yaml:"post_decode,omitempty" toml:"post_decode"`
}

// Decoder turns configs into models using the factories of a registry.
type Decoder struct {
	reg *Registry
}

// NewDecoder creates a decoder over the given registry.
func NewDecoder(reg *Registry) *Decoder {
	return &Decoder{reg: reg}
}

// Decode builds the model a config describes. The stages run in a fixed
// order: pre-decode hook, model, each system with its pre/post hooks,
// each agent population with its pre/post hooks, post-decode hook. The
// first failing stage aborts the decode.
func (d *Decoder) Decode(cfg *Config) (*ecsim.Model, error) {
	if err := d.runHook(cfg.PreDecode, nil); err != nil {
		return nil, fmt.Errorf("pre-decode hook: %w", err)
	}

	mf, err := d.reg.model(cfg.Model.Name)
	if err != nil {
		return nil, err
	}
	m, err := mf(cfg.Model.Params)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", cfg.Model.Name, err)
	}

	for _, sc := range cfg.Systems {
		if err := d.decodeSystem(m, sc); err != nil {
			return nil, err
		}
	}
	for _, ac := range cfg.Agents {
		if err := d.decodeAgents(m, ac); err != nil {
			return nil, err
		}
	}

	if err := d.runHook(cfg.PostDecode, m); err != nil {
		return nil, fmt.Errorf("post-decode hook: %w", err)
	}
	return m, nil
}

func (d *Decoder) decodeSystem(m *ecsim.Model, sc ObjectConfig) error {
	if err := d.runHook(sc.PreInit, m); err != nil {
		return fmt.Errorf("system %q pre-init: %w", sc.Name, err)
	}
	sf, err := d.reg.system(sc.Name)
	if err != nil {
		return err
	}
	sys, err := sf(m, sc.Params)
	if err != nil {
		return fmt.Errorf("system %q: %w", sc.Name, err)
	}
	if err := m.Scheduler().AddSystem(sys); err != nil {
		return fmt.Errorf("system %q: %w", sc.Name, err)
	}
	if err := d.runHook(sc.PostInit, m); err != nil {
		return fmt.Errorf("system %q post-init: %w", sc.Name, err)
	}
	return nil
}

func (d *Decoder) decodeAgents(m *ecsim.Model, ac AgentConfig) error {
	if err := d.runHook(ac.PreInit, m); err != nil {
		return fmt.Errorf("agents %q pre-init: %w", ac.Name, err)
	}
	af, err := d.reg.agent(ac.Name)
	if err != nil {
		return err
	}
	for i := 0; i < ac.Number; i++ {
		a, err := af(m, i, ac.Params)
		if err != nil {
			return fmt.Errorf("agent %q index %d: %w", ac.Name, i, err)
		}
		if err := m.Environment().AddAgent(a); err != nil {
			return fmt.Errorf("agent %q index %d: %w", ac.Name, i, err)
		}
	}
	if err := d.runHook(ac.PostInit, m); err != nil {
		return fmt.Errorf("agents %q post-init: %w", ac.Name, err)
	}
	return nil
}

func (d *Decoder) runHook(hc *HookConfig, m *ecsim.Model) error {
	if hc == nil {
		return nil
	}
	h, err := d.reg.hook(hc.Func)
	if err != nil {
		return err
	}
	return h(m, hc.Params)
}
