package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `yaml:"name" toml:"name"`               // Site name (default "Portfolio")
	URL         string `yaml:"url" toml:"url"`                 // Canonical URL, no trailing slash (default "http://localhost:3000")
	Description string `yaml:"description" toml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author" toml:"author"`           // Author name for meta, JSON-LD and RSS
	AuthorEmail string `yaml:"author_email" toml:"author_email"`
	Language    string `yaml:"language" toml:"language"` // RSS language and JSON-LD inLanguage (default "en")
	Locale      string `yaml:"locale" toml:"locale"`     // og:locale, e.g. "en_US"
	Image       string `yaml:"image" toml:"image"`       // Default representative image
	Favicon     string `yaml:"favicon" toml:"favicon"`
	TwitterSite string `yaml:"twitter_site" toml:"twitter_site"`
	Copyright   string `yaml:"copyright" toml:"copyright"`

	Person PersonProfile `yaml:"person" toml:"person"`

	// TimezoneOffset is the site's home timezone in hours east of UTC.
	// Publication dates flip at midnight in this zone (default 8).
	TimezoneOffset int `yaml:"timezone_offset" toml:"timezone_offset"`

	ContentDir   string `yaml:"content_dir" toml:"content_dir"`     // default "content"
	BlogDir      string `yaml:"blog_dir" toml:"blog_dir"`           // relative to ContentDir (default "blog")
	PortfolioDir string `yaml:"portfolio_dir" toml:"portfolio_dir"` // relative to ContentDir (default "portfolio")
	TemplatePath string `yaml:"template" toml:"template"`           // default "dist/index.html"
	OutputDir    string `yaml:"output_dir" toml:"output_dir"`       // default "dist"
}

// PersonProfile feeds the Person schema on the about page.
type PersonProfile struct {
	JobTitle    string   `yaml:"job_title" toml:"job_title"`
	Description string   `yaml:"description" toml:"description"`
	Image       string   `yaml:"image" toml:"image"`
	SameAs      []string `yaml:"same_as" toml:"same_as"`
}

// DefaultTimezoneOffset is UTC+8.
const DefaultTimezoneOffset = 8

// DefaultConfig returns a SiteConfig with every default applied. Start from
// this value when constructing a config in code: TimezoneOffset 0 is a valid
// setting and is not replaced by setDefaults.
func DefaultConfig() SiteConfig {
	c := SiteConfig{TimezoneOffset: DefaultTimezoneOffset}
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Language == "" {
		c.Language = "en"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.BlogDir == "" {
		c.BlogDir = "blog"
	}
	if c.PortfolioDir == "" {
		c.PortfolioDir = "portfolio"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.TemplatePath == "" {
		c.TemplatePath = filepath.Join(c.OutputDir, "index.html")
	}
}

// resolve makes relative filesystem paths relative to base.
func (c *SiteConfig) resolve(base string) {
	for _, p := range []*string{&c.ContentDir, &c.TemplatePath, &c.OutputDir} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// BlogPath returns the blog content directory.
func (c SiteConfig) BlogPath() string {
	return joinUnlessAbs(c.ContentDir, c.BlogDir)
}

// PortfolioPath returns the portfolio content directory.
func (c SiteConfig) PortfolioPath() string {
	return joinUnlessAbs(c.ContentDir, c.PortfolioDir)
}

// Location returns the fixed zone publication dates are evaluated in.
func (c SiteConfig) Location() *time.Location {
	return fixedZone(c.TimezoneOffset)
}

func joinUnlessAbs(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// LoadConfig reads a YAML or TOML config file (chosen by extension), applies
// a sibling .env file and FOLIO_* environment overrides, and fills defaults.
// Relative paths in the file are resolved against the file's directory. A
// missing file yields the defaults and a warning on logger.
func LoadConfig(path string, logger *slog.Logger) (SiteConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := SiteConfig{TimezoneOffset: DefaultTimezoneOffset}
	base := "."
	if path != "" {
		base = filepath.Dir(path)
	}

	if err := godotenv.Load(filepath.Join(base, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("config file not found, using defaults", attrPath(path))
		case err != nil:
			return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := decodeConfig(path, data, &cfg); err != nil {
				return SiteConfig{}, err
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return SiteConfig{}, err
	}
	cfg.setDefaults()
	cfg.resolve(base)
	return cfg, nil
}

func decodeConfig(path string, data []byte, cfg *SiteConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *SiteConfig) error {
	cfg.Name = EnvOr("FOLIO_SITE_NAME", cfg.Name)
	cfg.URL = EnvOr("FOLIO_SITE_URL", cfg.URL)
	cfg.Author = EnvOr("FOLIO_SITE_AUTHOR", cfg.Author)
	cfg.ContentDir = EnvOr("FOLIO_CONTENT_DIR", cfg.ContentDir)
	cfg.TemplatePath = EnvOr("FOLIO_TEMPLATE", cfg.TemplatePath)
	cfg.OutputDir = EnvOr("FOLIO_OUTPUT_DIR", cfg.OutputDir)
	if v := os.Getenv("FOLIO_TZ_OFFSET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOLIO_TZ_OFFSET: %w", err)
		}
		cfg.TimezoneOffset = n
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithLogger sets the logger used for build progress and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		s.logger = l
	}
}

// WithClock overrides the build instant used by the publication gate,
// sitemap dates and the feed's lastBuildDate.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		s.now = now
	}
}
