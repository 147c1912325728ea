// Package rules provides a file-based implementation of the
// driven.RuleProvider port. Per-environment business-rule tuning is
// read from a TOML file keyed by environment name.
package rules

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.RuleProvider = (*Provider)(nil)

// environmentRules is the per-environment TOML shape:
//
//	[environments.acme-prod]
//	price_epsilon = 0.05
//	disabled_codes = ["PRICE_MISMATCH"]
type environmentRules struct {
	PriceEpsilon  float64  `toml:"price_epsilon"`
	DisabledCodes []string `toml:"disabled_codes"`
}

type rulesFile struct {
	Environments map[string]environmentRules `toml:"environments"`
}

// Provider serves rule sets from a TOML file. Unknown environments and
// the empty environment fall back to the default rule set.
type Provider struct {
	mu           sync.RWMutex
	environments map[string]domain.RuleSet
}

// NewProvider creates a provider with no environment overrides; every
// lookup returns the defaults until LoadFile succeeds.
func NewProvider() *Provider {
	return &Provider{environments: make(map[string]domain.RuleSet)}
}

// NewProviderFromFile creates a provider and loads overrides from path.
// A missing file is not an error; the defaults stand.
func NewProviderFromFile(path string) (*Provider, error) {
	p := NewProvider()
	if err := p.LoadFile(path); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile replaces the environment overrides from a TOML file.
func (p *Provider) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var f rulesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}

	envs := make(map[string]domain.RuleSet, len(f.Environments))
	for name, r := range f.Environments {
		rs := domain.DefaultRuleSet()
		if r.PriceEpsilon > 0 {
			rs.PriceEpsilon = r.PriceEpsilon
		}
		rs.DisabledCodes = r.DisabledCodes
		envs[name] = rs
	}

	p.mu.Lock()
	p.environments = envs
	p.mu.Unlock()
	return nil
}

// RulesFor returns the rule set for an environment, or the defaults
// when the environment has no overrides.
func (p *Provider) RulesFor(environment string) domain.RuleSet {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if rs, ok := p.environments[environment]; ok {
		return rs
	}
	return domain.DefaultRuleSet()
}
