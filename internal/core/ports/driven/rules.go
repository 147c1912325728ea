package driven

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
)

// RuleProvider supplies customer-specific business-rule tuning. The
// engine passes Options.Environment through untouched; what the key
// means is entirely the provider's concern.
type RuleProvider interface {
	// RulesFor returns the rule set for an environment. Unknown
	// environments return the provider's defaults.
	RulesFor(environment string) domain.RuleSet
}
