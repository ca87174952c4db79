package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
)

// LoadTemplate reads and parses the prerender template. The whole file is
// read into memory, so the root route may safely overwrite it afterwards.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return ParseTemplate(string(data)), nil
}

// OutputPath maps a route path to its file below outDir: "/" is
// outDir/index.html and "/a/b" is outDir/a/b/index.html.
func OutputPath(outDir, routePath string) string {
	rel := strings.Trim(filepath.ToSlash(filepath.Clean("/"+routePath)), "/")
	if rel == "" {
		return filepath.Join(outDir, "index.html")
	}
	return filepath.Join(outDir, filepath.FromSlash(rel), "index.html")
}

// RouteOutcome classifies the result of prerendering one route.
type RouteOutcome int

const (
	OutcomeSuccess  RouteOutcome = iota // written with every slot filled
	OutcomeDegraded                     // written, but a slot was left as is
	OutcomeFailed                       // nothing written
)

func (o RouteOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "ok"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// RouteResult records what happened to one route.
type RouteResult struct {
	Path    string
	File    string
	Bytes   int
	Outcome RouteOutcome
	Err     error
}

// PrerenderResult aggregates a prerender run.
type PrerenderResult struct {
	Success  int
	Degraded int
	Failed   int
	Bytes    int64
	Routes   []RouteResult
}

// Errors is the number of routes that did not render cleanly.
func (r PrerenderResult) Errors() int {
	return r.Degraded + r.Failed
}

// Err joins the errors of routes whose file could not be written. Degraded
// routes do not make the run fail.
func (r PrerenderResult) Err() error {
	var errs []error
	for _, rr := range r.Routes {
		if rr.Outcome == OutcomeFailed {
			errs = append(errs, fmt.Errorf("%s: %w", rr.Path, rr.Err))
		}
	}
	return errors.Join(errs...)
}

// Prerenderer fills the template's slots for each route and writes the
// results below the output directory.
type Prerenderer struct {
	cfg    SiteConfig
	tpl    *Template
	images *ImageProbe
	logger *slog.Logger
}

// NewPrerenderer returns a Prerenderer for one build. Template issues are
// logged once here; every route rendered from a degraded template counts as
// an error.
func NewPrerenderer(cfg SiteConfig, tpl *Template, logger *slog.Logger) *Prerenderer {
	if logger == nil {
		logger = slog.Default()
	}
	for _, issue := range tpl.Issues() {
		logger.Warn("template slot problem", attrSlot(issue.Slot), attrError(issue.Err))
	}
	return &Prerenderer{
		cfg:    cfg,
		tpl:    tpl,
		images: NewImageProbe(cfg.OutputDir, cfg.URL),
		logger: logger,
	}
}

// PrerenderRoute returns the HTML of one route.
func (p *Prerenderer) PrerenderRoute(r Route) (string, error) {
	meta := MetaFor(p.cfg, r)
	if w, h, ok := p.images.Dimensions(meta.Image); ok {
		meta.ImageWidth, meta.ImageHeight = w, h
	}
	scripts, err := GenerateJsonLdScriptTags(JsonLdSchemas(p.cfg, r))
	if err != nil {
		return "", fmt.Errorf("json-ld: %w", err)
	}
	return p.tpl.Render(map[string]string{
		SlotTitle:  templ.EscapeString(meta.Title),
		SlotMeta:   generateRegionMeta(meta),
		SlotJSONLD: scripts,
	}), nil
}

// PrerenderAll renders and writes every route. A route that fails does not
// stop the others.
func (p *Prerenderer) PrerenderAll(routes []Route) PrerenderResult {
	var res PrerenderResult
	degraded := p.tpl.Degraded()
	for _, r := range routes {
		rr := p.writeRoute(r)
		if rr.Err == nil && degraded {
			rr.Outcome = OutcomeDegraded
			rr.Err = ErrMarkerMissing
		}
		switch rr.Outcome {
		case OutcomeSuccess:
			res.Success++
		case OutcomeDegraded:
			res.Degraded++
		case OutcomeFailed:
			res.Failed++
			p.logger.Error("prerender failed", attrRoute(r.Path), attrError(rr.Err))
		}
		res.Bytes += int64(rr.Bytes)
		res.Routes = append(res.Routes, rr)
		p.logger.Debug("prerendered", attrRoute(r.Path), attrKind(r.Kind.String()), attrFile(rr.File))
	}
	return res
}

func (p *Prerenderer) writeRoute(r Route) RouteResult {
	rr := RouteResult{Path: r.Path, File: OutputPath(p.cfg.OutputDir, r.Path)}
	html, err := p.PrerenderRoute(r)
	if err == nil {
		err = writeFile(rr.File, []byte(html))
	}
	if err != nil {
		rr.Outcome, rr.Err = OutcomeFailed, err
		return rr
	}
	rr.Bytes = len(html)
	return rr
}

// PrerenderAll loads the configured template and prerenders routes into the
// configured output directory. A missing template fails the whole run.
func PrerenderAll(cfg SiteConfig, routes []Route, logger *slog.Logger) (PrerenderResult, error) {
	tpl, err := LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return PrerenderResult{}, err
	}
	return NewPrerenderer(cfg, tpl, logger).PrerenderAll(routes), nil
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
