package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Config is the root configuration for Mylo.
type Config struct {
	General  GeneralConfig  `json:"general"`
	Channels ChannelsConfig `json:"channels"`
	Notion   NotionConfig   `json:"notion"`
	Airtable AirtableConfig `json:"airtable"`
	Intent   IntentConfig   `json:"intent"`
	Stats    StatsConfig    `json:"stats"`
}

type GeneralConfig struct {
	LogLevel              string `json:"logLevel"`
	LogFile               string `json:"logFile,omitempty"` // optional log file path
	TriggerPhrase         string `json:"triggerPhrase"`
	MaxConcurrentMessages int    `json:"maxConcurrentMessages"`
	MaxMessageLength      int    `json:"maxMessageLength"` // outbound blocks longer than this are split
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

type TelegramConfig struct {
	Enabled   bool           `json:"enabled"`
	Token     string         `json:"token"`
	AllowFrom FlexStringList `json:"allowFrom"`
	ParseMode string         `json:"parseMode"`
}

// NotionConfig configures the document-search collaborator.
type NotionConfig struct {
	Token      string `json:"token"`
	APIBase    string `json:"apiBase,omitempty"` // override for tests
	APIVersion string `json:"apiVersion"`
	PageSize   int    `json:"pageSize"`
}

// AirtableConfig configures the ledger collaborator. Fields maps the
// engine's logical field roles to the actual column names in the table.
type AirtableConfig struct {
	Token      string          `json:"token"`
	APIBase    string          `json:"apiBase,omitempty"` // override for tests
	BaseID     string          `json:"baseId"`
	Table      string          `json:"table"`
	MaxRecords int             `json:"maxRecords"`
	Fields     LedgerFieldsMap `json:"fields"`
}

// LedgerFieldsMap names the columns the earnings engine reads.
type LedgerFieldsMap struct {
	Identifier string `json:"identifier"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	PaidOut    string `json:"paidOut"`
}

// IntentConfig configures the intent classifier.
type IntentConfig struct {
	RulesDir string `json:"rulesDir,omitempty"` // optional dir of YAML rule packs
}

// StatsConfig configures the query audit / usage stats store.
type StatsConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

// FlexStringList is a []string that can unmarshal from JSON arrays containing
// both strings and numbers (e.g. ["123", 456] both become "123", "456").
type FlexStringList []string

func (f *FlexStringList) UnmarshalJSON(data []byte) error {
	// Try []string first
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}
	// Fallback: array of mixed types
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			result = append(result, s)
			continue
		}
		var n float64
		if err := json.Unmarshal(item, &n); err == nil {
			result = append(result, strconv.FormatInt(int64(n), 10))
			continue
		}
		result = append(result, string(item))
	}
	*f = result
	return nil
}

// DefaultConfigDir returns the default config directory (~/.mylo).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mylo"
	}
	return filepath.Join(home, ".mylo")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.General.LogFile = ExpandPath(cfg.General.LogFile)
	cfg.Stats.DBPath = ExpandPath(cfg.Stats.DBPath)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides lets secrets come from the environment (or a .env file)
// instead of the config file on disk.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MYLO_TELEGRAM_TOKEN"); v != "" {
		cfg.Channels.Telegram.Token = v
	}
	if v := os.Getenv("MYLO_NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv("MYLO_AIRTABLE_TOKEN"); v != "" {
		cfg.Airtable.Token = v
	}
	if v := os.Getenv("MYLO_AIRTABLE_BASE"); v != "" {
		cfg.Airtable.BaseID = v
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match // Keep original if no env var and no default
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.General.TriggerPhrase) == "" {
		errs = append(errs, "general.triggerPhrase must not be empty")
	}
	if cfg.General.MaxConcurrentMessages < 1 || cfg.General.MaxConcurrentMessages > 100 {
		errs = append(errs, "general.maxConcurrentMessages must be between 1 and 100")
	}
	if cfg.General.MaxMessageLength < 100 {
		errs = append(errs, "general.maxMessageLength must be >= 100")
	}
	if cfg.Airtable.MaxRecords < 1 || cfg.Airtable.MaxRecords > 10000 {
		errs = append(errs, "airtable.maxRecords must be between 1 and 10000")
	}
	if cfg.Notion.PageSize < 1 || cfg.Notion.PageSize > 100 {
		errs = append(errs, "notion.pageSize must be between 1 and 100")
	}
	if cfg.Airtable.Fields.Identifier == "" || cfg.Airtable.Fields.Amount == "" {
		errs = append(errs, "airtable.fields.identifier and airtable.fields.amount must be set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
