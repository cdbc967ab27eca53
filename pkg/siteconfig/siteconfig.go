// Package siteconfig holds per-hostname extraction configuration: the
// CSS selector used to find the article body when readability yields
// nothing, and extra removal selectors for site-specific chrome.
//
// The conversion pipeline only ever receives an immutable merged
// snapshot; refresh and override logic lives entirely in the Store.
package siteconfig

import "strings"

// DefaultSelector is used when a hostname has no configured selector.
const DefaultSelector = "main"

// Config is the extraction configuration for one hostname.
type Config struct {
	// Selector locates the content root when readability fails.
	Selector string `yaml:"selector" json:"selector"`

	// Remove lists extra CSS selectors stripped from the content root,
	// in addition to the built-in noise selectors.
	Remove []string `yaml:"remove,omitempty" json:"remove,omitempty"`
}

// Defaults returns the built-in hostname configurations. Callers must
// not mutate the returned map; use Merged to layer overrides on top.
func Defaults() map[string]Config {
	return map[string]Config{
		"medium.com": {
			Selector: "article",
			Remove:   []string{".speechify-ignore", "[data-testid='audioPlayButton']"},
		},
		"github.com": {
			Selector: ".markdown-body",
			Remove:   []string{".zeroclipboard-container", ".anchor"},
		},
		"stackoverflow.com": {
			Selector: "#mainbar",
			Remove:   []string{".js-post-menu", ".votecell", ".bottom-notice"},
		},
		"en.wikipedia.org": {
			Selector: "#mw-content-text",
			Remove:   []string{".mw-editsection", ".navbox", ".mw-jump-link"},
		},
		"news.ycombinator.com": {
			Selector: ".fatitem",
		},
	}
}

// Merged layers overrides on top of defaults and returns a fresh map.
// An override replaces the default for its hostname wholesale.
func Merged(defaults, overrides map[string]Config) map[string]Config {
	out := make(map[string]Config, len(defaults)+len(overrides))
	for host, cfg := range defaults {
		out[host] = cfg
	}
	for host, cfg := range overrides {
		out[host] = cfg
	}
	return out
}

// Lookup returns the configuration for a hostname. It tries the exact
// host first, then the host without a leading "www.". Unknown hosts
// get the default selector and no extra removals.
func Lookup(configs map[string]Config, hostname string) Config {
	if cfg, ok := configs[hostname]; ok {
		return withDefaults(cfg)
	}
	if cfg, ok := configs[strings.TrimPrefix(hostname, "www.")]; ok {
		return withDefaults(cfg)
	}
	return Config{Selector: DefaultSelector}
}

func withDefaults(cfg Config) Config {
	if cfg.Selector == "" {
		cfg.Selector = DefaultSelector
	}
	return cfg
}
