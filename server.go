package folio

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NotFoundFile is served with status 404 when present in the output tree.
const NotFoundFile = "404.html"

// BuildStatus is the outcome of the most recent preview build.
type BuildStatus struct {
	BuildID  string    `json:"build_id,omitempty"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
	Routes   int       `json:"routes"`
	Degraded int       `json:"degraded"`
	Failed   int       `json:"failed"`
	At       time.Time `json:"at"`
}

// PreviewServer serves a site's output tree for local preview.
type PreviewServer struct {
	Echo *echo.Echo

	site   *Site
	mu     sync.RWMutex
	status BuildStatus
}

// NewPreviewServer wires the echo instance that serves site's output
// directory. Every response is marked uncacheable.
func NewPreviewServer(site *Site) *PreviewServer {
	p := &PreviewServer{Echo: echo.New(), site: site}
	e := p.Echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = p.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			site.logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(noCacheMiddleware)

	e.GET("/_folio/status", p.handleStatus)
	e.GET("/*", p.handleFile)
	e.HEAD("/*", p.handleFile)
	return p
}

// Record stores the outcome of a build for the status endpoint.
func (p *PreviewServer) Record(report BuildReport, err error) {
	st := BuildStatus{
		BuildID:  report.BuildID,
		OK:       err == nil,
		Routes:   report.Routes,
		Degraded: report.Prerender.Degraded,
		Failed:   report.Prerender.Failed,
		At:       report.AsOf,
	}
	if err != nil {
		st.Error = err.Error()
	}
	p.mu.Lock()
	p.status = st
	p.mu.Unlock()
}

// Status returns the most recently recorded build outcome.
func (p *PreviewServer) Status() BuildStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *PreviewServer) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, p.Status())
}

func (p *PreviewServer) handleFile(c echo.Context) error {
	file, ok := p.resolve(c.Request().URL.Path)
	if !ok {
		return echo.ErrNotFound
	}
	return c.File(file)
}

// resolve maps a request path onto a file in the output tree, serving a
// directory's index.html for directory paths.
func (p *PreviewServer) resolve(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel != "" && !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false
	}
	name := filepath.Join(p.site.Config.OutputDir, filepath.FromSlash(rel))
	fi, err := os.Stat(name)
	if err != nil {
		return "", false
	}
	if fi.IsDir() {
		name = filepath.Join(name, "index.html")
		if fi, err = os.Stat(name); err != nil || fi.IsDir() {
			return "", false
		}
	}
	return name, true
}

func (p *PreviewServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		page, readErr := os.ReadFile(filepath.Join(p.site.Config.OutputDir, NotFoundFile))
		if readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, page)
			return
		}
		if !errors.Is(readErr, fs.ErrNotExist) {
			p.site.logger.Warn("read 404 page", attrError(readErr))
		}
		_ = c.String(http.StatusNotFound, "404 page not found")
		return
	}
	if he == nil || he.Code >= http.StatusInternalServerError {
		p.site.logger.Error("server error", attrRoute(c.Request().URL.Path), attrError(err))
	}
	p.Echo.DefaultHTTPErrorHandler(err, c)
}

func noCacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store, must-revalidate")
		return next(c)
	}
}
