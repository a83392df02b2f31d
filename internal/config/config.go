package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"deckgrip/internal/eventbus"
)

// FileName is the per-deck config file, stored inside the deck directory
const FileName = ".deckgrip.toml"

// Config represents the application configuration
type Config struct {
	Version      int        `toml:"version"`
	DeckDir      string     `toml:"deck_dir"`
	Theme        string     `toml:"theme"`         // mocha, latte, frappe, macchiato or auto
	StartIndex   int        `toml:"start_index"`   // cursor position on startup
	Sort         string     `toml:"sort"`          // name, modified or size
	Extensions   []string   `toml:"extensions"`    // file extensions treated as cards
	PreviewLines int        `toml:"preview_lines"` // lines of body shown in the preview panel
	PollSeconds  int        `toml:"poll_seconds"`  // rescan interval, 0 disables
	UISettings   UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Mouse       bool `toml:"mouse"`
	ShowPreview bool `toml:"show_preview"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewService creates a new config service
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	deckgripDir := filepath.Join(configDir, "deckgrip")
	os.MkdirAll(deckgripDir, 0755)

	return &configService{
		filePath: filepath.Join(deckgripDir, "deckgrip.toml"),
	}
}

// NewServiceWithBus creates a config service with event bus support
func NewServiceWithBus(bus eventbus.EventBus) Service {
	cs := NewService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default path
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the default path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	cs.publishLoaded(&cfg)
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{DeckDir: cfg.DeckDir})
	}
}

// Normalize fills empty fields with defaults and discards values the rest
// of the app would have to re-check everywhere
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	switch c.Sort {
	case "name", "modified", "size":
	default:
		c.Sort = def.Sort
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.PreviewLines <= 0 {
		c.PreviewLines = def.PreviewLines
	}
	if c.PollSeconds < 0 {
		c.PollSeconds = 0
	}
	if c.StartIndex < 0 {
		c.StartIndex = 0
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:      1,
		DeckDir:      homeDir,
		Theme:        "auto",
		StartIndex:   0,
		Sort:         "name",
		Extensions:   []string{".md", ".txt", ".go", ".py", ".js", ".ts", ".sh", ".json", ".yaml", ".toml"},
		PreviewLines: 12,
		PollSeconds:  10,
		UISettings: UISettings{
			Mouse:       true,
			ShowPreview: true,
		},
	}
}
