package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ContentTypeConfig locates the bodies and assets of one content type.
type ContentTypeConfig struct {
	Namespace      string `yaml:"namespace"`       // blob key prefix for bodies
	Extension      string `yaml:"extension"`       // blob key suffix, without the dot
	AssetNamespace string `yaml:"asset_namespace"` // CDN path prefix for relative image refs
	RewriteAssets  bool   `yaml:"rewrite_assets"`
}

// ContentConfig is the YAML file describing content types.
//
//	content:
//	  posts:
//	    namespace: posts
//	    extension: md
//	    asset_namespace: blog
//	    rewrite_assets: true
//	  resume:
//	    namespace: resume
//	    extension: json
//
// The resume is a single document stored at <namespace>/resume.<extension>.
type ContentConfig struct {
	Content struct {
		Posts  ContentTypeConfig `yaml:"posts"`
		Resume ContentTypeConfig `yaml:"resume"`
	} `yaml:"content"`
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(/[A-Za-z0-9_-]+)*$`)

// DefaultContentConfig is used when no file is configured.
func DefaultContentConfig() *ContentConfig {
	var c ContentConfig
	c.Content.Posts = ContentTypeConfig{
		Namespace:      "posts",
		Extension:      "md",
		AssetNamespace: "blog",
		RewriteAssets:  true,
	}
	c.Content.Resume = ContentTypeConfig{
		Namespace: "resume",
		Extension: "json",
	}
	return &c
}

// LoadContentConfig reads the YAML file at path. Keys missing from the file keep their defaults.
// An empty path returns the defaults.
func LoadContentConfig(path string) (*ContentConfig, error) {
	config := DefaultContentConfig()
	if path == "" {
		return config, nil
	}

	// #nosec G304 -- path is provided by trusted source (env var), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validateContentConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func validateContentConfig(c *ContentConfig) error {
	p := c.Content.Posts
	if !namespacePattern.MatchString(p.Namespace) {
		return fmt.Errorf("posts namespace %q is invalid", p.Namespace)
	}
	if p.Extension == "" || !namespacePattern.MatchString(p.Extension) {
		return fmt.Errorf("posts extension %q is invalid", p.Extension)
	}
	if p.RewriteAssets && !namespacePattern.MatchString(p.AssetNamespace) {
		return fmt.Errorf("posts asset_namespace %q is invalid", p.AssetNamespace)
	}
	r := c.Content.Resume
	if !namespacePattern.MatchString(r.Namespace) {
		return fmt.Errorf("resume namespace %q is invalid", r.Namespace)
	}
	if !namespacePattern.MatchString(r.Extension) {
		return fmt.Errorf("resume extension %q is invalid", r.Extension)
	}
	return nil
}
