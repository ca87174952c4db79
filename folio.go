// Package folio prerenders a personal portfolio and blog site. It loads
// markdown records with YAML front-matter, derives the route table, and
// writes one SEO-complete HTML file per route from a single-page-app
// template, together with a sitemap and an RSS feed.
//
// A build is a synchronous batch run: everything it needs (content, routes,
// the parsed template, the image probe memo) is created per build and passed
// explicitly between stages.
package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Site is a configured folio site.
type Site struct {
	Config SiteConfig

	logger *slog.Logger
	now    func() time.Time
}

// New creates a Site from cfg. Unset fields of cfg receive their defaults.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()

	s := &Site{
		Config: cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Logger returns the site's logger.
func (s *Site) Logger() *slog.Logger {
	return s.logger
}

// Now returns the build instant.
func (s *Site) Now() time.Time {
	return s.now()
}

// BuildReport summarizes one build.
type BuildReport struct {
	BuildID        string
	AsOf           time.Time
	Duration       time.Duration
	Posts          int // posts loaded
	PublishedPosts int
	Items          int
	Routes         int
	Prerender      PrerenderResult
	SitemapBytes   int
	FeedBytes      int
}

// BytesWritten is the total size of every file the build wrote.
func (r BuildReport) BytesWritten() int64 {
	return r.Prerender.Bytes + int64(r.SitemapBytes) + int64(r.FeedBytes)
}

// Plan loads content and collects the route table without writing anything.
// Loader errors and duplicate routes are returned as errors.
func (s *Site) Plan() (*Content, []Route, error) {
	content, err := LoadContent(s.Config, s.logger)
	if err != nil {
		return content, nil, fmt.Errorf("load content: %w", err)
	}
	routes, err := CollectRoutes(content, s.now(), s.Config.TimezoneOffset)
	if err != nil {
		return content, nil, err
	}
	return content, routes, nil
}

// LockPath is the file guarding the output directory against concurrent
// builds.
func (s *Site) LockPath() string {
	return filepath.Clean(s.Config.OutputDir) + ".lock"
}

// Build runs the whole pipeline: load, collect, prerender, sitemap, feed.
// Loader errors, duplicate routes and a missing template abort the build
// before any file is written. Routes whose file could not be written are
// reported in the returned error alongside a complete report.
func (s *Site) Build(ctx context.Context) (BuildReport, error) {
	if err := ctx.Err(); err != nil {
		return BuildReport{}, err
	}

	report := BuildReport{BuildID: uuid.NewString(), AsOf: s.now()}
	logger := s.logger.With(attrBuildID(report.BuildID))
	start := time.Now()

	lockPath := s.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return report, fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return report, fmt.Errorf("%w: %s", ErrBuildLocked, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release build lock", attrPath(lockPath), attrError(err))
		}
	}()

	content, err := LoadContent(s.Config, logger)
	if err != nil {
		return report, fmt.Errorf("load content: %w", err)
	}
	report.Posts = len(content.Posts)
	report.Items = len(content.Items)
	report.PublishedPosts = len(content.PublishedBlogPosts(report.AsOf, s.Config.TimezoneOffset))

	routes, err := CollectRoutes(content, report.AsOf, s.Config.TimezoneOffset)
	if err != nil {
		return report, err
	}
	report.Routes = len(routes)
	logger.Info("collected routes", attrCount(len(routes)))

	tpl, err := LoadTemplate(s.Config.TemplatePath)
	if err != nil {
		return report, err
	}

	report.Prerender = NewPrerenderer(s.Config, tpl, logger).PrerenderAll(routes)

	var errs []error
	if err := report.Prerender.Err(); err != nil {
		errs = append(errs, err)
	}
	if report.SitemapBytes, err = WriteSitemap(s.Config, routes, report.AsOf); err != nil {
		errs = append(errs, fmt.Errorf("sitemap: %w", err))
	}
	if report.FeedBytes, err = WriteFeed(s.Config, content, report.AsOf); err != nil {
		errs = append(errs, fmt.Errorf("feed: %w", err))
	}

	report.Duration = time.Since(start)
	logger.Info("build finished",
		attrCount(report.Routes),
		slog.Int("success", report.Prerender.Success),
		slog.Int("degraded", report.Prerender.Degraded),
		slog.Int("failed", report.Prerender.Failed),
		slog.Duration(KeyDuration, report.Duration),
	)
	return report, errors.Join(errs...)
}
