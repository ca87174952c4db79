package views

// Open Graph content types.
const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> region.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string
	ImageWidth  int // 0 when unknown
	ImageHeight int
	OGType      string // "website" or "article"

	// Article only.
	PublishedTime string
	Tags          []string

	Author      string
	SiteName    string
	Locale      string
	TwitterSite string
}

// IsArticle reports whether the article-specific Open Graph block applies.
func (m PageMeta) IsArticle() bool {
	return m.OGType == OGTypeArticle
}

// Schema is a single schema.org object, serialized as its own JSON-LD block.
type Schema map[string]any

// Type returns the schema's @type, or "" if unset.
func (s Schema) Type() string {
	t, _ := s["@type"].(string)
	return t
}
