package intent

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulePack is a user-supplied extension of the built-in pattern tables.
// Packs are appended after the built-ins, so built-in rule order (and the
// earnings-before-search precedence) is never disturbed.
type RulePack struct {
	Name            string   `yaml:"name"`
	EarningsPhrases []string `yaml:"earningsPhrases"`
	SearchTemplates []string `yaml:"searchTemplates"` // must contain one capture group
}

// AddPack compiles and appends a rule pack. Patterns that fail to compile
// reject the whole pack.
func (c *Classifier) AddPack(pack RulePack) error {
	var earnings, searches []*regexp.Regexp
	for _, p := range pack.EarningsPhrases {
		re, err := regexp.Compile(strings.ToLower(p))
		if err != nil {
			return fmt.Errorf("pack %s: earnings pattern %q: %w", pack.Name, p, err)
		}
		earnings = append(earnings, re)
	}
	for _, t := range pack.SearchTemplates {
		re, err := regexp.Compile(t)
		if err != nil {
			return fmt.Errorf("pack %s: search template %q: %w", pack.Name, t, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("pack %s: search template %q has no capture group", pack.Name, t)
		}
		searches = append(searches, re)
	}
	c.earnings = append(c.earnings, earnings...)
	// The catch-all is implicit (full remainder), so appended templates
	// still run before the fallback.
	c.searches = append(c.searches, searches...)
	return nil
}

// LoadRulePacks loads rule packs from YAML files in a directory. Files must
// have a .yaml or .yml extension. A missing directory is not an error.
func LoadRulePacks(dir string, logger *slog.Logger) ([]RulePack, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("rules directory does not exist, skipping", "dir", dir)
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read rules dir: %w", err)
	}

	var packs []RulePack
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("cannot read rule pack", "path", path, "err", err)
			continue
		}

		var pack RulePack
		if err := yaml.Unmarshal(data, &pack); err != nil {
			logger.Warn("cannot parse rule pack", "path", path, "err", err)
			continue
		}

		if pack.Name == "" {
			pack.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		logger.Info("loaded rule pack", "name", pack.Name, "path", path)
		packs = append(packs, pack)
	}

	return packs, nil
}
