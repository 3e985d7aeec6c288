package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dshills/textcutter/internal/config/loader"
	"github.com/dshills/textcutter/internal/join"
)

// Config is the complete textcutter configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Split   SplitConfig   `yaml:"split"`
	Words   WordsConfig   `yaml:"words"`
	Bullets BulletsConfig `yaml:"bullets"`
	Join    JoinConfig    `yaml:"join"`
	Script  ScriptConfig  `yaml:"script"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// FontsConfig configures font loading.
type FontsConfig struct {
	// DefaultFamily and DefaultStyle name the font new text layers get.
	DefaultFamily string `yaml:"defaultFamily"`
	DefaultStyle  string `yaml:"defaultStyle"`

	// MaxConcurrent bounds parallel font loads.
	MaxConcurrent int `yaml:"maxConcurrent"`
}

// SplitConfig configures split-lines and split-words.
type SplitConfig struct {
	// LineGap is the vertical space between split lines.
	LineGap float64 `yaml:"lineGap"`

	// KeepOriginal keeps the source layer after a split.
	KeepOriginal bool `yaml:"keepOriginal"`

	// Coalesce writes one range per run instead of per character.
	Coalesce bool `yaml:"coalesce"`
}

// WordsConfig configures word placement.
type WordsConfig struct {
	// Gap is the space after a word as a fraction of its font size.
	Gap float64 `yaml:"gap"`

	// FallbackSize is the font size assumed for words of mixed size.
	FallbackSize float64 `yaml:"fallbackSize"`
}

// BulletsConfig configures strip-bullets.
type BulletsConfig struct {
	// Glyphs lists the stripped markers. Empty means the built-in set.
	Glyphs string `yaml:"glyphs"`
}

// JoinConfig configures the join command.
type JoinConfig struct {
	// Separator used by the plain join command: none, space or newline.
	Separator string `yaml:"separator"`
}

// ScriptConfig configures the Lua host.
type ScriptConfig struct {
	// Timeout aborts scripts that run too long. Zero disables the limit.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Fonts: FontsConfig{
			DefaultFamily: "Roboto",
			DefaultStyle:  "Regular",
			MaxConcurrent: 8,
		},
		Words: WordsConfig{
			Gap:          0.25,
			FallbackSize: 12,
		},
		Join:   JoinConfig{Separator: "none"},
		Script: ScriptConfig{Timeout: 5 * time.Second},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	path      string
	envPrefix string
	useEnv    bool
}

// WithFile reads path as a TOML or YAML file. A missing file is ignored.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFS sets the file system files are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv enables or disables environment overrides.
func WithEnv(enable bool) Option {
	return func(o *options) {
		o.useEnv = enable
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// Load builds the configuration from the defaults, an optional file and the
// environment, in increasing precedence, and validates the result.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		useEnv:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := Default().toMap()
	if err != nil {
		return nil, err
	}

	if o.path != "" {
		fl, err := loader.NewFileLoaderWithFS(o.fs, o.path)
		if err != nil {
			return nil, err
		}
		file, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if o.useEnv {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap returns the generic form of c.
func (c *Config) toMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return m, nil
}

// fromMap decodes merged settings. Unknown settings are rejected.
func fromMap(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, (&ValidationError{Path: path, Message: msg, Value: value}).Error())
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		check(false, "logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	check(c.Fonts.DefaultFamily != "", "fonts.defaultFamily", "must not be empty", c.Fonts.DefaultFamily)
	check(c.Fonts.MaxConcurrent > 0, "fonts.maxConcurrent", "must be positive", c.Fonts.MaxConcurrent)
	check(c.Split.LineGap >= 0, "split.lineGap", "must not be negative", c.Split.LineGap)
	check(c.Words.Gap >= 0, "words.gap", "must not be negative", c.Words.Gap)
	check(c.Words.FallbackSize > 0, "words.fallbackSize", "must be positive", c.Words.FallbackSize)
	check(utf8.ValidString(c.Bullets.Glyphs), "bullets.glyphs", "must be valid UTF-8", c.Bullets.Glyphs)
	_, err := join.ParseSeparator(c.Join.Separator)
	check(err == nil, "join.separator", "must be none, space or newline", c.Join.Separator)
	check(c.Script.Timeout >= 0, "script.timeout", "must not be negative", c.Script.Timeout)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(errs, "; "))
	}
	return nil
}

// GlyphRunes returns the configured bullet glyphs with whitespace removed.
func (c *Config) GlyphRunes() []rune {
	var out []rune
	for _, r := range c.Bullets.Glyphs {
		if !strings.ContainsRune(" \t\r\n,", r) {
			out = append(out, r)
		}
	}
	return out
}

// JoinSeparator returns the parsed join separator.
func (c *Config) JoinSeparator() join.Separator {
	sep, _ := join.ParseSeparator(c.Join.Separator)
	return sep
}
