// Package search escalates revenue lookups through ordered external search
// tiers when the company website yields nothing.
package search

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/PopVibeCoding/rev-finder-web-scraper/internal/revenue"
)

// TierConfig tunes the search fallback chain.
type TierConfig struct {
	// TrustedSources are domains favored in query filters, e.g. financial
	// data aggregators.
	TrustedSources []string `yaml:"trusted_sources"`
	// YearPriority overrides the engine's fiscal-year list when set.
	YearPriority []int `yaml:"year_priority"`
	// MaxPrimaryQueries caps queries issued against the primary engine.
	MaxPrimaryQueries int `yaml:"max_primary_queries"`
	// MaxSecondaryQueries caps queries issued against the secondary engine.
	MaxSecondaryQueries int `yaml:"max_secondary_queries"`
	// MaxResultLinks caps the deduplicated result links scraped per tier,
	// across all of its queries.
	MaxResultLinks int `yaml:"max_result_links"`
}

// DefaultTierConfig returns the built-in chain settings.
func DefaultTierConfig() TierConfig {
	return TierConfig{
		TrustedSources: []string{
			"macrotrends.net",
			"zoominfo.com",
			"growjo.com",
			"craft.co",
			"reuters.com",
			"bloomberg.com",
			"forbes.com",
		},
		YearPriority:        revenue.YearPriority(),
		MaxPrimaryQueries:   3,
		MaxSecondaryQueries: 2,
		MaxResultLinks:      3,
	}
}

// LoadTierConfig reads chain settings from a YAML file with a top-level
// "search" key, filling gaps from the defaults.
func LoadTierConfig(path string) (TierConfig, error) {
	cfg := DefaultTierConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "search: read tier config %s", path)
	}

	var wrapper struct {
		Search TierConfig `yaml:"search"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return cfg, eris.Wrap(err, "search: parse tier config")
	}

	loaded := wrapper.Search
	if len(loaded.TrustedSources) > 0 {
		cfg.TrustedSources = loaded.TrustedSources
	}
	if len(loaded.YearPriority) > 0 {
		cfg.YearPriority = loaded.YearPriority
	}
	if loaded.MaxPrimaryQueries > 0 {
		cfg.MaxPrimaryQueries = loaded.MaxPrimaryQueries
	}
	if loaded.MaxSecondaryQueries > 0 {
		cfg.MaxSecondaryQueries = loaded.MaxSecondaryQueries
	}
	if loaded.MaxResultLinks > 0 {
		cfg.MaxResultLinks = loaded.MaxResultLinks
	}
	return cfg, nil
}
