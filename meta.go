package folio

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/views"
)

// DescriptionLimit bounds meta descriptions, in visible characters.
const DescriptionLimit = 160

const ellipsis = "..."

// Truncate shortens s to at most limit visible characters (grapheme
// clusters), replacing the cut tail with "...". Strings within the limit are
// returned unchanged. A combining sequence or emoji is never split.
func Truncate(s string, limit int) string {
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep <= 0 {
		return ellipsis[:max(limit, 0)]
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < keep && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}

type pageText struct {
	Title       string
	Description string
}

// staticPageText is the fixed meta table for static routes.
func staticPageText(cfg SiteConfig) map[string]pageText {
	who := cfg.Author
	if who == "" {
		who = cfg.Name
	}
	title := func(s string) string { return s + " | " + cfg.Name }
	caser := cases.Title(language.English)

	table := map[string]pageText{
		"/":         {Title: cfg.Name, Description: cfg.Description},
		"/about":    {Title: title("About"), Description: fmt.Sprintf("About %s: background, experience and interests.", who)},
		"/contact":  {Title: title("Contact"), Description: fmt.Sprintf("Get in touch with %s.", who)},
		"/projects": {Title: title("Projects"), Description: fmt.Sprintf("Academic research, software and music by %s.", who)},
		"/blog":     {Title: title("Blog"), Description: fmt.Sprintf("Professional, creative and casual writing by %s.", who)},
		"/bio":      {Title: title("Bio"), Description: fmt.Sprintf("A short biography of %s.", who)},
	}
	for _, c := range PortfolioCategories {
		var desc string
		switch c {
		case PortfolioAcademic:
			desc = fmt.Sprintf("Research papers and publications by %s.", who)
		case PortfolioCoding:
			desc = fmt.Sprintf("Software projects and tools built by %s.", who)
		case PortfolioMusic:
			desc = fmt.Sprintf("Compositions and recordings by %s.", who)
		}
		table["/projects/"+c.String()] = pageText{
			Title:       title(caser.String(c.String()) + " Projects"),
			Description: desc,
		}
	}
	return table
}

// MetaFor computes the SEO descriptor of a route. Unknown static paths fall
// back to the root entry.
func MetaFor(cfg SiteConfig, r Route) PageMeta {
	m := PageMeta{
		URL:         AbsoluteURL(cfg.URL, r.Path),
		Image:       ResolveURL(cfg.URL, cfg.Image),
		OGType:      views.OGTypeWebsite,
		Author:      cfg.Author,
		SiteName:    cfg.Name,
		Locale:      cfg.Locale,
		TwitterSite: cfg.TwitterSite,
	}

	switch {
	case r.Kind == RouteBlog && r.Post != nil:
		p := r.Post
		m.Title = p.Title + " | " + cfg.Name
		m.Description = firstNonEmpty(p.Summary, cfg.Description)
		m.OGType = views.OGTypeArticle
		m.PublishedTime = p.Date
		m.Tags = p.Tags
		if p.Image != "" {
			m.Image = ResolveURL(cfg.URL, p.Image)
		}
	case r.Kind == RoutePortfolio && r.Item != nil:
		it := r.Item
		m.Title = it.Title + " | " + cfg.Name
		m.Description = firstNonEmpty(it.Description, cfg.Description)
		m.OGType = views.OGTypeArticle
		if y, ok := it.StartYear(); ok {
			m.PublishedTime = fmt.Sprintf("%04d-01-01", y)
		}
		m.Tags = it.Tags
		if it.Image != "" {
			m.Image = ResolveURL(cfg.URL, it.Image)
		}
	default:
		table := staticPageText(cfg)
		text, ok := table[r.Path]
		if !ok {
			text = table["/"]
		}
		m.Title = text.Title
		m.Description = text.Description
	}

	m.Description = Truncate(m.Description, DescriptionLimit)
	return m
}

// GenerateMetaTags renders the full head fragment for m, <title> included.
func GenerateMetaTags(m PageMeta) string {
	return renderMeta(views.MetaTags(m))
}

// generateRegionMeta renders the fragment placed inside the template's SEO
// region; the title is substituted separately through the title slot.
func generateRegionMeta(m PageMeta) string {
	return renderMeta(views.HeadMeta(m))
}

func renderMeta(c templ.Component) string {
	// Meta components only write to a strings.Builder, which cannot fail.
	out, _ := views.RenderString(context.Background(), c)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
