package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dpotapov/go-sdg/sdghtml"
)

// config is the YAML configuration of the tool. Relative paths are resolved against the
// directory of the configuration file.
type config struct {
	// Root is the directory the site sources live in.
	Root string `yaml:"root"`
	// SiteRoot is the URL the site is published under.
	SiteRoot string   `yaml:"site_root"`
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	CSS      []string `yaml:"css"`
	// Localization is the code or icon of the default localization.
	Localization   string `yaml:"localization"`
	AttributeWidth int    `yaml:"attribute_width"`

	CheckLinks   bool          `yaml:"check_links"`
	LinkTimeout  time.Duration `yaml:"link_timeout"`
	LinkCache    string        `yaml:"link_cache"`
	LinkCacheTTL time.Duration `yaml:"link_cache_ttl"`
}

func defaultConfig() config {
	return config{
		Root:         ".",
		Localization: "en",
		LinkCacheTTL: 24 * time.Hour,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(dir, cfg.Root)
	}
	if cfg.LinkCache != "" && !filepath.IsAbs(cfg.LinkCache) {
		cfg.LinkCache = filepath.Join(dir, cfg.LinkCache)
	}
	return cfg, nil
}

// localization resolves the configured localization.
func (c config) localization() (*sdghtml.Localization, error) {
	loc, ok := sdghtml.LookupLocalization(c.Localization)
	if !ok {
		return nil, fmt.Errorf("unknown localization %q", c.Localization)
	}
	return &loc, nil
}

func (c config) siteRoot() (*url.URL, error) {
	if c.SiteRoot == "" {
		return nil, nil
	}
	u, err := url.Parse(c.SiteRoot)
	if err != nil {
		return nil, fmt.Errorf("parse site root: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("site root %q is not an absolute URL", c.SiteRoot)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
