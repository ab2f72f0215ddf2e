package config

// File is the YAML configuration file structure.
// Per-host settings are keyed by host name; the defaults section applies
// to every host unless overridden.
//
// Example .sitemd file:
//
//	defaults:
//	  user_agent: "docs-archiver/1.0"
//	sites:
//	  docs.example.com:
//	    depth: 3
//	    headers:
//	      Authorization: "Bearer token"
//	    ignore_patterns:
//	      - "/changelog/*"
//	      - "*.pdf"
type File struct {
	// Defaults applies to all hosts unless a site entry overrides it.
	Defaults SiteConfig `yaml:"defaults"`

	// Sites maps a host name to its overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteConfig holds per-host crawl overrides.
type SiteConfig struct {
	// UserAgent overrides the User-Agent header for this host.
	UserAgent string `yaml:"user_agent"`

	// Headers are extra request headers sent with every fetch to this
	// host, e.g. authentication tokens for private documentation.
	Headers map[string]string `yaml:"headers"`

	// Depth overrides the crawl depth bound for this host.
	// 0 means "not set"; use the CLI flag for a depth-0 crawl.
	Depth int `yaml:"depth"`

	// IgnorePatterns are URL path glob patterns to skip.
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// FollowPatterns restrict crawling to matching URL paths when set.
	FollowPatterns []string `yaml:"follow_patterns"`
}

// SiteFor returns the effective configuration for a host: the defaults
// section with the host's own entry merged over it.
func (f *File) SiteFor(host string) SiteConfig {
	if f == nil {
		return SiteConfig{}
	}

	result := f.Defaults
	override, ok := f.Sites[host]
	if !ok {
		return result
	}

	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}
	if override.Depth > 0 {
		result.Depth = override.Depth
	}
	if len(override.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for key, value := range override.Headers {
			result.Headers[key] = value
		}
	}
	if len(override.IgnorePatterns) > 0 {
		result.IgnorePatterns = override.IgnorePatterns
	}
	if len(override.FollowPatterns) > 0 {
		result.FollowPatterns = override.FollowPatterns
	}

	return result
}
