package cli

import (
	"github.com/spf13/cobra"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/core/ports/driving"
	"github.com/tradewire-labs/edix/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// engine is the processing facade all commands call into.
var engine driving.Engine

// configStore supplies engine option defaults; optional.
var configStore driven.ConfigStore

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "edix",
	Short: "EDI X12 message processing engine",
	Long: `edix tokenizes, validates and maps ANSI X12 interchanges into
typed documents. Purchase orders (850), invoices (810), advance ship
notices (856) and functional acknowledgments (997) are supported.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// SetEngine wires the processing engine used by all commands.
func SetEngine(e driving.Engine) {
	engine = e
}

// SetConfigStore wires the store that supplies engine option defaults.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// engineOptions returns the configured defaults, or the built-in ones
// when no config store is wired.
func engineOptions() domain.Options {
	if configStore != nil {
		return configStore.Options()
	}
	return domain.DefaultOptions()
}
