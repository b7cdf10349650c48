package classify

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errMissingFallback = errors.New("classify: rule set needs a fallback tag")

// LoadRules reads a YAML rule set from path. An empty path selects the
// built-in rules. A file may override any subset of the rule set;
// omitted sections fall back to the defaults so a rules file can add a
// single additive rule without restating the rest.
func LoadRules(path string) (RuleSet, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read classifier rules: %w", err)
	}

	var overrides RuleSet
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return RuleSet{}, fmt.Errorf("parse classifier rules %s: %w", path, err)
	}

	if len(overrides.Additive) > 0 {
		rules.Additive = overrides.Additive
	}
	if len(overrides.Primary) > 0 {
		rules.Primary = overrides.Primary
	}
	if overrides.Fallback != "" {
		rules.Fallback = overrides.Fallback
	}

	if err := validateRules(rules); err != nil {
		return RuleSet{}, fmt.Errorf("classifier rules %s: %w", path, err)
	}
	return rules, nil
}

func validateRules(rules RuleSet) error {
	if rules.Fallback == "" {
		return errMissingFallback
	}
	for _, rule := range append(append([]Rule{}, rules.Additive...), rules.Primary...) {
		if rule.Tag == "" {
			return errors.New("rule without a tag")
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rule %q has no keywords", rule.Tag)
		}
	}
	return nil
}
