// Package config loads renderer settings from <profileDir>/chatview.json,
// then applies environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/miosa/osa-chatview/style"
)

// Config holds persistent renderer settings.
type Config struct {
	Theme string `json:"theme,omitempty"`
	// HighlightStyle overrides the theme's Chroma style.
	HighlightStyle string `json:"highlight_style,omitempty"`
	WordWrap       int    `json:"word_wrap,omitempty"`
	// Sanitize filters rendered bodies through an HTML allowlist. Raw HTML
	// passes through untouched when off.
	Sanitize bool   `json:"sanitize,omitempty"`
	Addr     string `json:"addr,omitempty"`
}

const filename = "chatview.json"

// Load reads <profileDir>/chatview.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/chatview.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overlays CHATVIEW_* environment variables onto c.
func (c *Config) ApplyEnv() {
	c.Addr = getEnv("CHATVIEW_ADDR", c.Addr)
	c.Theme = getEnv("CHATVIEW_THEME", c.Theme)
	c.HighlightStyle = getEnv("CHATVIEW_HIGHLIGHT_STYLE", c.HighlightStyle)
	c.WordWrap = getEnvInt("CHATVIEW_WIDTH", c.WordWrap)
	c.Sanitize = getEnvBool("CHATVIEW_SANITIZE", c.Sanitize)
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if _, ok := style.Themes[c.Theme]; !ok {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(style.ThemeNames, ", "))
	}
	if c.WordWrap <= 0 {
		return fmt.Errorf("word wrap must be > 0, got %d", c.WordWrap)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	return nil
}

// ChromaStyle is the code highlighting style to use: the explicit override,
// else the theme's.
func (c Config) ChromaStyle() string {
	if c.HighlightStyle != "" {
		return c.HighlightStyle
	}
	return style.Themes[c.Theme].ChromaStyle
}

func defaults() Config {
	return Config{
		Theme:    "dark",
		WordWrap: 100,
		Addr:     ":8090",
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
