// Package store provides loading of categorization rule data from YAML.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ledgerchat/internal/config"
)

var log = config.Logger

// CategoryRule pairs a category name with its keyword set. Rule order in
// the file is priority order, so rules are a list, not a map.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is the structure of the rules YAML file. Any section left empty
// falls back to the built-in defaults.
type RuleSet struct {
	Categories       []CategoryRule `yaml:"categories"`
	PersonIndicators []string       `yaml:"person_indicators"`
	BusinessKeywords []string       `yaml:"business_keywords"`
}

// RuleStore manages loading of categorization rules.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a store for the given rules file. An empty filename
// means "search the standard locations for rules.yaml".
func NewRuleStore(rulesFile string) *RuleStore {
	return &RuleStore{RulesFile: rulesFile}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "ledgerchat", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the rule set from the YAML file. A missing file is not an
// error: it returns an empty rule set so callers keep the built-in tables.
func (s *RuleStore) LoadRules() (*RuleSet, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Rules file not found: %s, using built-in rules", filename)
			return &RuleSet{}, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("could not parse rules file: %w", err)
	}

	log.WithField("categories", len(rules.Categories)).Infof("Loaded rules from %s", filePath)
	return &rules, nil
}
