package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DataConfig points at the pre-built stores and the FAQ source used to build the index.
type DataConfig struct {
	KnowledgeBase string `yaml:"knowledge_base"`
	FAQSource     string `yaml:"faq_source"`
	FAQIndex      string `yaml:"faq_index"`
}

// MatcherConfig tunes the FAQ similarity matcher.
type MatcherConfig struct {
	Threshold float64 `yaml:"threshold"`
	Related   int     `yaml:"related"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig configures logging. File is used by the chat TUI so log lines
// do not corrupt the terminal.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data    DataConfig    `yaml:"data"`
	Matcher MatcherConfig `yaml:"matcher"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/insurance-advisor/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "insurance-advisor", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			KnowledgeBase: "data/knowledge_base.yaml",
			FAQSource:     "data/faqs.yaml",
			FAQIndex:      "data/faq_index.json",
		},
		Matcher: MatcherConfig{Threshold: 0.2, Related: 3},
		Server:  ServerConfig{Listen: ":8080"},
		Log:     LogConfig{Level: "info", File: "advisor.log"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Data.KnowledgeBase == "" {
		cfg.Data.KnowledgeBase = def.Data.KnowledgeBase
	}
	if cfg.Data.FAQSource == "" {
		cfg.Data.FAQSource = def.Data.FAQSource
	}
	if cfg.Data.FAQIndex == "" {
		cfg.Data.FAQIndex = def.Data.FAQIndex
	}
	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = def.Matcher.Threshold
	}
	if cfg.Matcher.Related == 0 {
		cfg.Matcher.Related = def.Matcher.Related
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = def.Server.Listen
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = def.Log.File
	}
}

// applyEnv lets the environment (or a .env file loaded by the caller)
// override file settings.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("ADVISOR_KB_PATH"); v != "" {
		cfg.Data.KnowledgeBase = v
	}
	if v := os.Getenv("ADVISOR_INDEX_PATH"); v != "" {
		cfg.Data.FAQIndex = v
	}
	if v := os.Getenv("ADVISOR_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("ADVISOR_MATCH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matcher.Threshold = f
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
