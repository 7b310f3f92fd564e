// Package risk scores a canonical person record against a fixed rule set and
// buckets the score into a risk tier. Scoring is pure and deterministic; the
// keyword classifiers are data-driven so the rules stay auditable without a
// code change.
package risk

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

//go:embed keywords.json
var defaultKeywordsJSON []byte

// KeywordConfig holds the ordered pattern lists, one per category. Each entry
// is a regular expression fragment; a category matches when any entry does,
// case-insensitively.
type KeywordConfig struct {
	// Tenancy matches eviction and residential-tenancy-board records
	// (scored more heavily than generic adverse legal).
	Tenancy []string `json:"tenancy"`
	// AdverseLegal matches the broader adverse-legal vocabulary.
	AdverseLegal []string `json:"adverse_legal"`
	// AdversePress matches adverse-media topics and descriptions.
	AdversePress []string `json:"adverse_press"`
	// HostileComments matches hostile public-comment content.
	HostileComments []string `json:"hostile_comments"`
}

// Classifier is a compiled KeywordConfig ready for matching.
type Classifier struct {
	tenancy      *regexp.Regexp
	adverseLegal *regexp.Regexp
	adversePress *regexp.Regexp
	hostile      *regexp.Regexp
}

// ConfigError reports a keyword configuration problem.
type ConfigError struct {
	Category string
	Message  string
	Cause    error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("keyword config error in %s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("keyword config error in %s: %s", e.Category, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// DefaultKeywords returns the embedded keyword configuration.
func DefaultKeywords() KeywordConfig {
	var cfg KeywordConfig
	if err := json.Unmarshal(defaultKeywordsJSON, &cfg); err != nil {
		// The embedded file ships with the binary; failing to parse it is a
		// programmer error, not a runtime condition.
		panic(fmt.Sprintf("embedded keywords.json is invalid: %v", err))
	}
	return cfg
}

// LoadKeywords reads a keyword configuration from a JSON file, for operators
// who override the embedded defaults.
func LoadKeywords(path string) (KeywordConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeywordConfig{}, &ConfigError{Category: "file", Message: "failed to read " + path, Cause: err}
	}
	var cfg KeywordConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return KeywordConfig{}, &ConfigError{Category: "file", Message: "failed to parse " + path, Cause: err}
	}
	return cfg, nil
}

// Compile turns the config into a matcher. Each category's patterns are
// joined into one alternation compiled case-insensitively.
func (c KeywordConfig) Compile() (*Classifier, error) {
	compile := func(category string, patterns []string) (*regexp.Regexp, error) {
		if len(patterns) == 0 {
			return nil, nil
		}
		re, err := regexp.Compile("(?i)" + strings.Join(patterns, "|"))
		if err != nil {
			return nil, &ConfigError{Category: category, Message: "invalid pattern", Cause: err}
		}
		return re, nil
	}

	var cl Classifier
	var err error
	if cl.tenancy, err = compile("tenancy", c.Tenancy); err != nil {
		return nil, err
	}
	if cl.adverseLegal, err = compile("adverse_legal", c.AdverseLegal); err != nil {
		return nil, err
	}
	if cl.adversePress, err = compile("adverse_press", c.AdversePress); err != nil {
		return nil, err
	}
	if cl.hostile, err = compile("hostile_comments", c.HostileComments); err != nil {
		return nil, err
	}
	return &cl, nil
}

// MustCompile compiles the config, panicking on error. Intended for the
// embedded defaults.
func (c KeywordConfig) MustCompile() *Classifier {
	cl, err := c.Compile()
	if err != nil {
		panic(err)
	}
	return cl
}

func matches(re *regexp.Regexp, fields ...string) bool {
	if re == nil {
		return false
	}
	for _, f := range fields {
		if f != "" && re.MatchString(f) {
			return true
		}
	}
	return false
}
