package folio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"time"
)

// SitemapFile is the sitemap's name in the output directory.
const SitemapFile = "sitemap.xml"

const (
	changeFreqMonthly = "monthly"
	changeFreqYearly  = "yearly"

	priorityFeatured = 0.7
	priorityDefault  = 0.6

	// staleAfterDays is the age after which a post is expected to change yearly.
	staleAfterDays = 365
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func formatPriority(p float64) string {
	return fmt.Sprintf("%.1f", p)
}

func contentPriority(featured bool) string {
	if featured {
		return formatPriority(priorityFeatured)
	}
	return formatPriority(priorityDefault)
}

// SitemapEntries builds the sitemap entries for a route table, in route
// order. asOf provides the build date used where a record has no date of
// its own.
func SitemapEntries(cfg SiteConfig, routes []Route, asOf time.Time) []SitemapURL {
	today := localToday(asOf, cfg.TimezoneOffset)
	buildDate := today.Format(time.DateOnly)
	staleBefore := today.AddDate(0, 0, -staleAfterDays)

	pages := make(map[string]StaticPage, len(staticPages))
	for _, p := range staticPages {
		pages[p.Path] = p
	}

	urls := make([]SitemapURL, 0, len(routes))
	for _, r := range routes {
		u := SitemapURL{Loc: AbsoluteURL(cfg.URL, r.Path)}
		switch {
		case r.Kind == RouteBlog && r.Post != nil:
			u.LastMod = r.Post.Date
			u.ChangeFreq = changeFreqMonthly
			if d, ok := parseDate(r.Post.Date); ok && d.Before(staleBefore) {
				u.ChangeFreq = changeFreqYearly
			}
			u.Priority = contentPriority(r.Post.Featured)
		case r.Kind == RoutePortfolio && r.Item != nil:
			u.LastMod = buildDate
			if y, ok := r.Item.StartYear(); ok {
				u.LastMod = fmt.Sprintf("%04d-01-01", y)
			}
			u.ChangeFreq = changeFreqYearly
			u.Priority = contentPriority(r.Item.Featured)
		default:
			u.LastMod = buildDate
			if p, ok := pages[r.Path]; ok {
				u.ChangeFreq = p.ChangeFreq
				u.Priority = formatPriority(p.Priority)
			}
		}
		urls = append(urls, u)
	}
	return urls
}

// RenderSitemap encodes entries as a sitemap protocol document.
func RenderSitemap(urls []SitemapURL) ([]byte, error) {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteSitemap writes sitemap.xml into the output directory and returns the
// number of bytes written.
func WriteSitemap(cfg SiteConfig, routes []Route, asOf time.Time) (int, error) {
	data, err := RenderSitemap(SitemapEntries(cfg, routes, asOf))
	if err != nil {
		return 0, err
	}
	if err := writeFile(filepath.Join(cfg.OutputDir, SitemapFile), data); err != nil {
		return 0, err
	}
	return len(data), nil
}
