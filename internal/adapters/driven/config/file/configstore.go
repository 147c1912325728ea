package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileConfig is the on-disk TOML shape. It mirrors domain.Options but
// keeps its own struct so the file format can evolve independently of
// the engine surface.
type fileConfig struct {
	ValidateFormat        bool   `toml:"validate_format"`
	ValidateBusinessRules bool   `toml:"validate_business_rules"`
	IncludeRawSegments    bool   `toml:"include_raw_segments"`
	FailOnBusinessRules   bool   `toml:"fail_on_business_rules"`
	MaxMessageBytes       int    `toml:"max_message_bytes"`
	Environment           string `toml:"environment"`
}

func defaultFileConfig() fileConfig {
	opts := domain.DefaultOptions()
	return fileConfig{
		ValidateFormat:        opts.ValidateFormat,
		ValidateBusinessRules: opts.ValidateBusinessRules,
		MaxMessageBytes:       opts.MaxMessageBytes,
	}
}

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML. Engine option defaults are stored in a TOML file within
// the edix config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   fileConfig
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.edix/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".edix")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   defaultFileConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Options returns the configured default engine options.
func (s *ConfigStore) Options() domain.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Options{
		ValidateFormat:        s.config.ValidateFormat,
		ValidateBusinessRules: s.config.ValidateBusinessRules,
		IncludeRawSegments:    s.config.IncludeRawSegments,
		FailOnBusinessRules:   s.config.FailOnBusinessRules,
		MaxMessageBytes:       s.config.MaxMessageBytes,
		Environment:           s.config.Environment,
	}
}

// SetOptions replaces the stored defaults and persists immediately.
func (s *ConfigStore) SetOptions(opts domain.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = fileConfig{
		ValidateFormat:        opts.ValidateFormat,
		ValidateBusinessRules: opts.ValidateBusinessRules,
		IncludeRawSegments:    opts.IncludeRawSegments,
		FailOnBusinessRules:   opts.FailOnBusinessRules,
		MaxMessageBytes:       opts.MaxMessageBytes,
		Environment:           opts.Environment,
	}
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file is not
// an error; the defaults stand.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = defaultFileConfig()
			return nil
		}
		return err
	}

	loaded := defaultFileConfig()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.config = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
