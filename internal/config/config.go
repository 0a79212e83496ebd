package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kevincowleys/dji-log-parser/internal/keychain"
	"github.com/kevincowleys/dji-log-parser/internal/keychainapi"
)

// Config is the CLI's on-disk configuration: where to reach the keychain
// HTTP service, how to authenticate against it, what to fall back to when a
// log file's own Auxiliary Version block doesn't name a department, and how
// the normalized frames should be written out.
type Config struct {
	Keychain KeychainConfig `yaml:"keychain" json:"keychain"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// KeychainConfig holds the external HTTP collaborator's connection details.
type KeychainConfig struct {
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	ApiKey     string `yaml:"api_key" json:"api_key"`
	Department byte   `yaml:"department" json:"department"`
}

// OutputConfig controls how the CLI renders decoded frames.
type OutputConfig struct {
	Pretty bool `yaml:"pretty" json:"pretty"`
}

// LoggingConfig mirrors internal/logger.Init's parameters so the CLI can
// bootstrap logging straight from a loaded Config.
type LoggingConfig struct {
	FilePath   string `yaml:"file_path" json:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	Debug      bool   `yaml:"debug" json:"debug"`
}

// Manager loads, holds, and saves a Config, guarding access with a mutex so
// it can be shared across goroutines (the blocking HTTP fetch and a
// FetchAsync caller, for instance).
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	filePath string
}

// NewManager builds a Manager bound to filePath. Call Load before Get.
func NewManager(filePath string) *Manager {
	return &Manager{filePath: filePath}
}

// Load reads and parses the YAML config file. A missing file is not an
// error: it is treated as "no config yet" and a default one is written in
// its place, matching the teacher's first-run bootstrap behavior.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.config = DefaultConfig()
			return m.saveUnsafe()
		}
		return err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	m.config = &cfg
	return nil
}

// Save writes the current config back to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnsafe()
}

func (m *Manager) saveUnsafe() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}
	// 0600: the file may carry a live keychain API key.
	return os.WriteFile(m.filePath, data, 0600)
}

// Get returns a copy of the currently loaded config.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// Update validates and replaces the current config, then persists it.
func (m *Manager) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
	return m.saveUnsafe()
}

// Validate checks the config for values the rest of the program cannot
// safely act on, collecting every problem found rather than stopping at the
// first, matching the teacher's aggregate-then-report Validate style.
func (c *Config) Validate() error {
	var errs []string

	if c.Keychain.Endpoint != "" {
		if u, err := url.Parse(c.Keychain.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("keychain endpoint %q is not a valid absolute URL", c.Keychain.Endpoint))
		}
	}

	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("logging max_size_mb %d must not be negative", c.Logging.MaxSizeMB))
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging max_backups %d must not be negative", c.Logging.MaxBackups))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// DefaultConfig is written the first time the CLI runs against a config
// path that doesn't exist yet.
func DefaultConfig() *Config {
	return &Config{
		Keychain: KeychainConfig{
			Endpoint:   keychainapi.DefaultEndpoint,
			Department: keychain.DefaultDepartment,
		},
		Output: OutputConfig{
			Pretty: true,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
