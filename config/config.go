package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/duration"
	"github.com/spiffcs/folio/internal/locale"
)

// Config represents the application configuration
type Config struct {
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	DefaultFormat string `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	Language      string `yaml:"language,omitempty" json:"language,omitempty"`
	Theme         string `yaml:"theme,omitempty" json:"theme,omitempty"`
	CacheTTL      string `yaml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`

	// Top-level config sections
	Calendar  *CalendarOverrides  `yaml:"calendar,omitempty" json:"calendar,omitempty"`
	Generator *GeneratorOverrides `yaml:"generator,omitempty" json:"generator,omitempty"`
	Activity  *ActivityOverrides  `yaml:"activity,omitempty" json:"activity,omitempty"`
	Server    *ServerOverrides    `yaml:"server,omitempty" json:"server,omitempty"`
}

// CalendarOverrides tunes the calendar layout and reveal animation.
type CalendarOverrides struct {
	WeekWidth        *int    `yaml:"week_width,omitempty" json:"week_width,omitempty"`
	MinLabelDistance *int    `yaml:"min_label_distance,omitempty" json:"min_label_distance,omitempty"`
	RevealChunk      *int    `yaml:"reveal_chunk,omitempty" json:"reveal_chunk,omitempty"`
	RevealInterval   *string `yaml:"reveal_interval,omitempty" json:"reveal_interval,omitempty"`
}

// GeneratorOverrides tunes the simulated calendar.
type GeneratorOverrides struct {
	ActivityThreshold *float64 `yaml:"activity_threshold,omitempty" json:"activity_threshold,omitempty"`
	WeekdayMultiplier *float64 `yaml:"weekday_multiplier,omitempty" json:"weekday_multiplier,omitempty"`
	WeekendMultiplier *float64 `yaml:"weekend_multiplier,omitempty" json:"weekend_multiplier,omitempty"`
	MaxCount          *int     `yaml:"max_count,omitempty" json:"max_count,omitempty"`
}

// ActivityOverrides - timeline settings
type ActivityOverrides struct {
	Pages *int `yaml:"pages,omitempty" json:"pages,omitempty"`
}

// ServerOverrides - HTTP API settings
type ServerOverrides struct {
	Address *string `yaml:"address,omitempty" json:"address,omitempty"`
}

// RevealSettings controls the progressive reveal.
type RevealSettings struct {
	Chunk    int
	Interval time.Duration
}

const (
	defaultFormat   = "text"
	defaultCacheTTL = "1h"
	defaultPages    = 1
)

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".folio"
	}
	return filepath.Join(configDir, "folio")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".folio.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .folio.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return loadFrom(ConfigPath(), LocalConfigPath())
}

func loadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{DefaultFormat: defaultFormat}

	if err := readInto(globalPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}

	var localCfg Config
	if err := readInto(localPath, &localCfg); err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	cfg = mergeConfig(cfg, &localCfg)

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = defaultFormat
	}
	return cfg, nil
}

// readInto decodes path into cfg. A missing file is not an error.
func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	return &Config{
		Username:      pickString(global.Username, local.Username),
		DefaultFormat: pickString(global.DefaultFormat, local.DefaultFormat),
		Language:      pickString(global.Language, local.Language),
		Theme:         pickString(global.Theme, local.Theme),
		CacheTTL:      pickString(global.CacheTTL, local.CacheTTL),
		Calendar:      mergeCalendar(global.Calendar, local.Calendar),
		Generator:     mergeGenerator(global.Generator, local.Generator),
		Activity:      mergeActivity(global.Activity, local.Activity),
		Server:        mergeServer(global.Server, local.Server),
	}
}

func pickString(global, local string) string {
	if local != "" {
		return local
	}
	return global
}

func pick[T any](global, local *T) *T {
	if local != nil {
		return local
	}
	return global
}

func mergeCalendar(global, local *CalendarOverrides) *CalendarOverrides {
	if global == nil && local == nil {
		return nil
	}
	if global == nil {
		global = &CalendarOverrides{}
	}
	if local == nil {
		local = &CalendarOverrides{}
	}
	return &CalendarOverrides{
		WeekWidth:        pick(global.WeekWidth, local.WeekWidth),
		MinLabelDistance: pick(global.MinLabelDistance, local.MinLabelDistance),
		RevealChunk:      pick(global.RevealChunk, local.RevealChunk),
		RevealInterval:   pick(global.RevealInterval, local.RevealInterval),
	}
}

func mergeGenerator(global, local *GeneratorOverrides) *GeneratorOverrides {
	if global == nil && local == nil {
		return nil
	}
	if global == nil {
		global = &GeneratorOverrides{}
	}
	if local == nil {
		local = &GeneratorOverrides{}
	}
	return &GeneratorOverrides{
		ActivityThreshold: pick(global.ActivityThreshold, local.ActivityThreshold),
		WeekdayMultiplier: pick(global.WeekdayMultiplier, local.WeekdayMultiplier),
		WeekendMultiplier: pick(global.WeekendMultiplier, local.WeekendMultiplier),
		MaxCount:          pick(global.MaxCount, local.MaxCount),
	}
}

func mergeActivity(global, local *ActivityOverrides) *ActivityOverrides {
	if global == nil && local == nil {
		return nil
	}
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &ActivityOverrides{Pages: pick(global.Pages, local.Pages)}
}

func mergeServer(global, local *ServerOverrides) *ServerOverrides {
	if global == nil && local == nil {
		return nil
	}
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &ServerOverrides{Address: pick(global.Address, local.Address)}
}

// GetLayoutOptions returns the calendar layout with overrides applied.
func (c *Config) GetLayoutOptions() calendar.Options {
	opts := calendar.DefaultOptions()
	if c.Calendar == nil {
		return opts
	}
	if c.Calendar.WeekWidth != nil && *c.Calendar.WeekWidth > 0 {
		opts.WeekWidth = *c.Calendar.WeekWidth
	}
	if c.Calendar.MinLabelDistance != nil && *c.Calendar.MinLabelDistance >= 0 {
		opts.MinLabelDistance = *c.Calendar.MinLabelDistance
	}
	return opts
}

// GetRevealSettings returns the reveal chunk size and tick interval.
func (c *Config) GetRevealSettings() (RevealSettings, error) {
	rs := RevealSettings{Chunk: constants.RevealChunk, Interval: constants.RevealInterval}
	if c.Calendar == nil {
		return rs, nil
	}
	if c.Calendar.RevealChunk != nil {
		if *c.Calendar.RevealChunk < 1 {
			return rs, fmt.Errorf("calendar.reveal_chunk must be at least 1, got %d", *c.Calendar.RevealChunk)
		}
		rs.Chunk = *c.Calendar.RevealChunk
	}
	if c.Calendar.RevealInterval != nil {
		d, err := duration.Parse(*c.Calendar.RevealInterval)
		if err != nil {
			return rs, fmt.Errorf("calendar.reveal_interval: %w", err)
		}
		rs.Interval = d
	}
	return rs, nil
}

// GetGeneratorWeights returns the simulated calendar parameters with user
// overrides merged with defaults.
func (c *Config) GetGeneratorWeights() contrib.Weights {
	w := contrib.DefaultWeights()
	if c.Generator == nil {
		return w
	}
	g := c.Generator
	if g.ActivityThreshold != nil {
		w.ActivityThreshold = *g.ActivityThreshold
	}
	if g.WeekdayMultiplier != nil {
		w.WeekdayMultiplier = *g.WeekdayMultiplier
	}
	if g.WeekendMultiplier != nil {
		w.WeekendMultiplier = *g.WeekendMultiplier
	}
	if g.MaxCount != nil {
		w.MaxCount = *g.MaxCount
	}
	return w
}

// GetCacheTTL parses cache_ttl, defaulting to one hour.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	raw := c.CacheTTL
	if raw == "" {
		raw = defaultCacheTTL
	}
	ttl, err := duration.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("cache_ttl: %w", err)
	}
	return ttl, nil
}

// GetLanguage returns the configured language, or one detected from the
// environment when unset.
func (c *Config) GetLanguage() (locale.Language, error) {
	if c.Language == "" {
		return locale.Detect(os.Getenv("LANG")), nil
	}
	return locale.Parse(c.Language)
}

// GetTheme returns the configured theme, dark when unset.
func (c *Config) GetTheme() (calendar.Theme, error) {
	if c.Theme == "" {
		return calendar.ThemeDark, nil
	}
	return calendar.ParseTheme(c.Theme)
}

// GetActivityPages returns how many timeline pages non-interactive output loads.
func (c *Config) GetActivityPages() int {
	if c.Activity != nil && c.Activity.Pages != nil && *c.Activity.Pages > 0 {
		return min(*c.Activity.Pages, constants.MaxActivityPages)
	}
	return defaultPages
}

// GetServerAddress returns the listen address of the HTTP API.
func (c *Config) GetServerAddress() string {
	if c.Server != nil && c.Server.Address != nil && *c.Server.Address != "" {
		return *c.Server.Address
	}
	return constants.DefaultServerAddress
}

// Validate checks every value that is parsed lazily.
func (c *Config) Validate() error {
	if _, err := c.GetLanguage(); err != nil {
		return err
	}
	if _, err := c.GetTheme(); err != nil {
		return err
	}
	if _, err := c.GetCacheTTL(); err != nil {
		return err
	}
	if _, err := c.GetRevealSettings(); err != nil {
		return err
	}
	w := c.GetGeneratorWeights()
	if w.ActivityThreshold < 0 || w.ActivityThreshold >= 1 {
		return fmt.Errorf("generator.activity_threshold must be in [0, 1), got %v", w.ActivityThreshold)
	}
	if w.MaxCount < 1 {
		return fmt.Errorf("generator.max_count must be at least 1, got %d", w.MaxCount)
	}
	return nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := ConfigPath()
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Tokens are only read from the environment, never from config files.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// Set updates a top-level value by its config key. Values are validated
// before they are stored.
func (c *Config) Set(key, value string) error {
	switch key {
	case "token":
		return fmt.Errorf("tokens cannot be stored in config files for security reasons. Set the GITHUB_TOKEN environment variable instead")
	case "username":
		c.Username = value
	case "format", "default_format":
		if value != "text" && value != "json" && value != "html" {
			return fmt.Errorf("invalid format: %s (must be text, json or html)", value)
		}
		c.DefaultFormat = value
	case "language":
		l, err := locale.Parse(value)
		if err != nil {
			return err
		}
		c.Language = string(l)
	case "theme":
		t, err := calendar.ParseTheme(value)
		if err != nil {
			return err
		}
		c.Theme = string(t)
	case "cache_ttl":
		if _, err := duration.Parse(value); err != nil {
			return err
		}
		c.CacheTTL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	layout := calendar.DefaultOptions()
	weights := contrib.DefaultWeights()
	chunk := constants.RevealChunk
	interval := constants.RevealInterval.String()
	pages := defaultPages
	addr := constants.DefaultServerAddress

	return &Config{
		DefaultFormat: defaultFormat,
		Language:      string(locale.Default),
		Theme:         string(calendar.ThemeDark),
		CacheTTL:      defaultCacheTTL,
		Calendar: &CalendarOverrides{
			WeekWidth:        &layout.WeekWidth,
			MinLabelDistance: &layout.MinLabelDistance,
			RevealChunk:      &chunk,
			RevealInterval:   &interval,
		},
		Generator: &GeneratorOverrides{
			ActivityThreshold: &weights.ActivityThreshold,
			WeekdayMultiplier: &weights.WeekdayMultiplier,
			WeekendMultiplier: &weights.WeekendMultiplier,
			MaxCount:          &weights.MaxCount,
		},
		Activity: &ActivityOverrides{Pages: &pages},
		Server:   &ServerOverrides{Address: &addr},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# folio configuration file
# See: folio config defaults  (for all available options)

# GitHub user shown when no username argument is given
# username: octocat

# Output format: text, json or html
default_format: text

# Interface language (en, es) and calendar theme (dark, light)
# language: en
# theme: dark

# How long GitHub responses stay cached
cache_ttl: 1h

# Tune the simulated calendar (optional)
# generator:
#   activity_threshold: 0.7
#   max_count: 10

# The GitHub token is read from GITHUB_TOKEN (or a .env file), never from here.
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
