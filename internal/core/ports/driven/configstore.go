package driven

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
)

// ConfigStore supplies engine option defaults from configuration.
// Implementations handle persistence (e.g., TOML files); per-request
// options always win over stored defaults.
type ConfigStore interface {
	// Options returns the configured default engine options.
	Options() domain.Options

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
