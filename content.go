package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	contentExt     = ".md"
	excludedPrefix = "_"
)

type blogFrontMatter struct {
	ID       yaml.Node `yaml:"id"`
	Title    string    `yaml:"title"`
	Date     yaml.Node `yaml:"date"`
	Summary  string    `yaml:"summary"`
	Category string    `yaml:"category"`
	Tags     []string  `yaml:"tags"`
	Featured bool      `yaml:"featured"`
	ReadTime int       `yaml:"readTime"`
	Image    string    `yaml:"image"`
}

type portfolioFrontMatter struct {
	ID          yaml.Node `yaml:"id"`
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	Type        string    `yaml:"type"`
	Year        yaml.Node `yaml:"year"`
	Description string    `yaml:"description"`
	Featured    bool      `yaml:"featured"`
	Tags        []string  `yaml:"tags"`
	TechStack   []string  `yaml:"techStack"`
	Tools       []string  `yaml:"tools"`
	Award       string    `yaml:"award"`
	Venue       string    `yaml:"venue"`
	Image       string    `yaml:"image"`
}

// LoadBlogPosts reads every blog post in dir, in filename order.
//
// A missing directory is not an error: it yields no posts and a warning.
// A file that cannot be parsed is reported in the returned error (one
// *LoadError per file, joined) while the remaining files still load.
func LoadBlogPosts(dir string, logger *slog.Logger) ([]BlogPost, error) {
	return loadDir(dir, "blog", logger, parseBlogPost)
}

// LoadPortfolioItems reads every portfolio item in dir, in filename order.
// Error semantics match LoadBlogPosts.
func LoadPortfolioItems(dir string, logger *slog.Logger) ([]PortfolioItem, error) {
	return loadDir(dir, "portfolio", logger, parsePortfolioItem)
}

func loadDir[T any](dir, kind string, logger *slog.Logger, parse func(path string, header []byte, body string) (T, error)) ([]T, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Content directory not found, continuing without it", attrKind(kind), attrPath(dir))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}

	var (
		records []T
		errs    []error
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), contentExt) || strings.HasPrefix(name, excludedPrefix) {
			continue
		}
		path := filepath.Join(dir, name)
		rec, err := loadFile(path, parse)
		if err != nil {
			logger.Error("Failed to load content file", attrKind(kind), attrFile(path), attrError(err))
			errs = append(errs, &LoadError{Path: path, Err: err})
			continue
		}
		records = append(records, rec)
	}
	logger.Debug("Loaded content", attrKind(kind), attrPath(dir), attrCount(len(records)))
	return records, errors.Join(errs...)
}

func loadFile[T any](path string, parse func(path string, header []byte, body string) (T, error)) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}
	header, body, had, err := splitFrontMatter(data)
	if err != nil {
		return zero, err
	}
	if !had {
		return zero, errors.New("no front-matter block")
	}
	return parse(path, header, string(body))
}

func parseBlogPost(path string, header []byte, body string) (BlogPost, error) {
	var fm blogFrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return BlogPost{}, fmt.Errorf("parse front-matter: %w", err)
	}
	id, err := requiredID(&fm.ID)
	if err != nil {
		return BlogPost{}, err
	}
	date, err := requiredScalar(&fm.Date, "date")
	if err != nil {
		return BlogPost{}, err
	}
	if _, ok := parseDate(date); !ok {
		return BlogPost{}, fmt.Errorf("date %q is not a YYYY-MM-DD calendar date", date)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return BlogPost{}, errors.New("missing required field \"title\"")
	}
	if fm.Category == "" {
		return BlogPost{}, errors.New("missing required field \"category\"")
	}
	category, err := ParseBlogCategory(fm.Category)
	if err != nil {
		return BlogPost{}, err
	}
	if fm.ReadTime < 0 {
		return BlogPost{}, fmt.Errorf("readTime must be positive, got %d", fm.ReadTime)
	}
	return BlogPost{
		ID:         id,
		Title:      fm.Title,
		Date:       date,
		Summary:    fm.Summary,
		Category:   category,
		Tags:       FilterEmpty(fm.Tags),
		Featured:   fm.Featured,
		ReadTime:   fm.ReadTime,
		Image:      fm.Image,
		Content:    body,
		SourcePath: path,
	}, nil
}

func parsePortfolioItem(path string, header []byte, body string) (PortfolioItem, error) {
	var fm portfolioFrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return PortfolioItem{}, fmt.Errorf("parse front-matter: %w", err)
	}
	id, err := requiredID(&fm.ID)
	if err != nil {
		return PortfolioItem{}, err
	}
	if strings.TrimSpace(fm.Title) == "" {
		return PortfolioItem{}, errors.New("missing required field \"title\"")
	}
	if fm.Category == "" {
		return PortfolioItem{}, errors.New("missing required field \"category\"")
	}
	category, err := ParsePortfolioCategory(fm.Category)
	if err != nil {
		return PortfolioItem{}, err
	}
	// year stays opaque: "2021" and "2021-2023" are both valid, so only
	// non-scalar values are rejected.
	if fm.Year.Kind != 0 && fm.Year.Kind != yaml.ScalarNode {
		return PortfolioItem{}, errors.New("year must be a scalar")
	}
	return PortfolioItem{
		ID:          id,
		Title:       fm.Title,
		Category:    category,
		Type:        fm.Type,
		Year:        fm.Year.Value,
		Description: fm.Description,
		Featured:    fm.Featured,
		Tags:        FilterEmpty(fm.Tags),
		TechStack:   FilterEmpty(fm.TechStack),
		Tools:       FilterEmpty(fm.Tools),
		Award:       fm.Award,
		Venue:       fm.Venue,
		Image:       fm.Image,
		Content:     body,
		SourcePath:  path,
	}, nil
}

func requiredScalar(n *yaml.Node, key string) (string, error) {
	v, err := scalarString(n)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("missing required field %q", key)
	}
	return strings.TrimSpace(v), nil
}

// requiredID returns the normalized id. Ids become a single route path
// segment and a directory name, so separators and dot segments are rejected.
func requiredID(n *yaml.Node) (string, error) {
	id, err := requiredScalar(n, "id")
	if err != nil {
		return "", err
	}
	if id == "." || id == ".." || strings.ContainsAny(id, "/\\") {
		return "", fmt.Errorf("id %q is not a valid path segment", id)
	}
	return id, nil
}
