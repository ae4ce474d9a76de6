package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// ConfigFileName is the workspace configuration file read by Viper.
const ConfigFileName = ".agenthq.yaml"

// WorkspaceConfig holds workspace-wide settings.
type WorkspaceConfig struct {
	// MaxAgents bounds the number of concurrently running agents.
	MaxAgents int `yaml:"max_agents" mapstructure:"max_agents"`
	// DefaultLevel is assigned to agents created without an explicit level.
	DefaultLevel models.AgentLevel `yaml:"default_level" mapstructure:"default_level"`
	// DefaultPriority is assigned to tasks created without one. Advisory only.
	DefaultPriority int `yaml:"default_priority" mapstructure:"default_priority"`
}

// ConfigurationManager loads and validates the workspace configuration.
type ConfigurationManager interface {
	Load() (*WorkspaceConfig, error)
	Validate(cfg *WorkspaceConfig) error
	WriteDefault() error
}

type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager reading
// .agenthq.yaml from the workspace root.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultWorkspaceConfig returns the configuration used when no file
// exists.
func DefaultWorkspaceConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		MaxAgents:       DefaultMaxAgents,
		DefaultLevel:    models.LevelAssociate,
		DefaultPriority: 0,
	}
}

func (cm *viperConfigManager) configPath() string {
	return filepath.Join(cm.basePath, ConfigFileName)
}

// Load reads the workspace config via Viper, falling back to defaults
// when the file is absent.
func (cm *viperConfigManager) Load() (*WorkspaceConfig, error) {
	cfg := DefaultWorkspaceConfig()

	if _, err := os.Stat(cm.configPath()); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(cm.configPath())
	v.SetConfigType("yaml")
	v.SetDefault("max_agents", cfg.MaxAgents)
	v.SetDefault("default_level", string(cfg.DefaultLevel))
	v.SetDefault("default_priority", cfg.DefaultPriority)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}
	if err := cm.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (cm *viperConfigManager) Validate(cfg *WorkspaceConfig) error {
	if cfg.MaxAgents < 1 {
		return fmt.Errorf("validating config: max_agents must be at least 1, got %d", cfg.MaxAgents)
	}
	if cfg.DefaultLevel != "" && cfg.DefaultLevel.Rank() < 0 {
		return fmt.Errorf("validating config: unknown default_level %q", cfg.DefaultLevel)
	}
	return nil
}

// WriteDefault writes a default .agenthq.yaml, leaving an existing file
// untouched.
func (cm *viperConfigManager) WriteDefault() error {
	path := cm.configPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(DefaultWorkspaceConfig())
	if err != nil {
		return fmt.Errorf("writing default config: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
