package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tradewire-labs/edix/internal/adapters/driven/config/file"
	"github.com/tradewire-labs/edix/internal/adapters/driven/rules"
	"github.com/tradewire-labs/edix/internal/adapters/driving/cli"
	"github.com/tradewire-labs/edix/internal/core/services"
)

// version is set at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ruleProvider, err := rules.NewProviderFromFile(rulesPath(configStore.Path()))
	if err != nil {
		return fmt.Errorf("loading business rules: %w", err)
	}

	engine := services.NewEngine(services.NewMessageTypeRegistry(), ruleProvider)

	cli.SetEngine(engine)
	cli.SetConfigStore(configStore)
	cli.SetVersion(version)

	return cli.Execute()
}

// rulesPath sits the rules file next to the config file.
func rulesPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "rules.toml")
}
