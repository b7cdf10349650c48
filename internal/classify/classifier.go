package classify

import (
	"strings"
)

// Rule maps a keyword set to a tag. Matching is substring containment
// on the lower-cased input, so a keyword embedded in a longer token
// still matches.
type Rule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

func (r Rule) matches(lowered string) bool {
	for _, keyword := range r.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered classification rule set. Additive rules each
// contribute their tag independently; Primary rules are evaluated in
// order with first-match-wins, and Fallback is assigned when none match.
type RuleSet struct {
	Additive []Rule `yaml:"additive"`
	Primary  []Rule `yaml:"primary"`
	Fallback string `yaml:"fallback"`
}

// DefaultRules returns the built-in rule set. The keyword sets are load
// bearing for compatibility and must not be reworded.
func DefaultRules() RuleSet {
	return RuleSet{
		Additive: []Rule{
			{Tag: "Theology", Keywords: []string{"sda", "theology", "god"}},
			{Tag: "Medical", Keywords: []string{"medical", "clinical", "patient", "guideline", "mfm"}},
		},
		Primary: []Rule{
			{Tag: "Actionable Task", Keywords: []string{"todo", "action"}},
		},
		Fallback: "Knowledge Grain",
	}
}

// Classifier evaluates a RuleSet over input text.
type Classifier struct {
	rules RuleSet
}

// New builds a classifier from the given rule set. Invalid rule sets
// (no fallback tag) are rejected so the exactly-one-primary invariant
// cannot be violated by configuration.
func New(rules RuleSet) (*Classifier, error) {
	if strings.TrimSpace(rules.Fallback) == "" {
		return nil, errMissingFallback
	}
	return &Classifier{rules: rules}, nil
}

// NewDefault builds a classifier over the built-in rules.
func NewDefault() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err) // built-in rules always carry a fallback
	}
	return c
}

// Classify derives the tag list for the given text. Pure function: no
// side effects, deterministic for a given rule set. Tag order is
// additive rules in declaration order followed by the primary tag, so
// the primary tag is always present and always exactly one.
func (c *Classifier) Classify(text string) []string {
	lowered := strings.ToLower(text)

	tags := make([]string, 0, len(c.rules.Additive)+1)
	for _, rule := range c.rules.Additive {
		if rule.matches(lowered) {
			tags = append(tags, rule.Tag)
		}
	}

	primary := c.rules.Fallback
	for _, rule := range c.rules.Primary {
		if rule.matches(lowered) {
			primary = rule.Tag
			break
		}
	}
	return append(tags, primary)
}

// Rules returns a copy of the active rule set.
func (c *Classifier) Rules() RuleSet {
	out := RuleSet{Fallback: c.rules.Fallback}
	out.Additive = append(out.Additive, c.rules.Additive...)
	out.Primary = append(out.Primary, c.rules.Primary...)
	return out
}
