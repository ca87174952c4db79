package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MetaTags renders the complete SEO head fragment for m, including the
// <title> element.
func MetaTags(m PageMeta) templ.Component {
	return metaTags(m, true)
}

// HeadMeta renders the fragment without the <title> element, for documents
// whose title lives outside the SEO region.
func HeadMeta(m PageMeta) templ.Component {
	return metaTags(m, false)
}

func metaTags(m PageMeta, withTitle bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var t tagWriter
		if withTitle {
			t.add("<title>" + templ.EscapeString(m.Title) + "</title>")
		}
		t.add(metaLine("name", "description", m.Description))
		t.optional("name", "author", m.Author)
		t.add(`<link rel="canonical" href="` + templ.EscapeString(m.URL) + `">`)

		t.add(metaLine("property", "og:type", m.OGType))
		t.add(metaLine("property", "og:url", m.URL))
		t.add(metaLine("property", "og:title", m.Title))
		t.add(metaLine("property", "og:description", m.Description))
		t.optional("property", "og:image", m.Image)
		t.dimension("og:image:width", m.ImageWidth)
		t.dimension("og:image:height", m.ImageHeight)
		t.optional("property", "og:site_name", m.SiteName)
		t.optional("property", "og:locale", m.Locale)

		if m.IsArticle() {
			t.optional("property", "article:published_time", m.PublishedTime)
			t.optional("property", "article:author", m.Author)
			for _, tag := range m.Tags {
				t.optional("property", "article:tag", tag)
			}
		}

		card := "summary"
		if m.Image != "" {
			card = "summary_large_image"
		}
		t.add(metaLine("name", "twitter:card", card))
		t.optional("name", "twitter:site", m.TwitterSite)
		t.add(metaLine("name", "twitter:title", m.Title))
		t.add(metaLine("name", "twitter:description", m.Description))
		t.optional("name", "twitter:image", m.Image)

		_, err := io.WriteString(w, t.String())
		return err
	})
}
