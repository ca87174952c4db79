package folio

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/eringen/folio/views"
)

const schemaContext = "https://schema.org"

// wordCountDivisor approximates source characters per word for a mostly
// CJK corpus.
const wordCountDivisor = 2

// JsonLdSchemas returns the schema.org objects for a route. The WebSite
// schema always comes first.
func JsonLdSchemas(cfg SiteConfig, r Route) []Schema {
	schemas := []Schema{websiteSchema(cfg)}
	switch r.Kind {
	case RouteStatic:
		if r.Path == "/about" {
			schemas = append(schemas, personSchema(cfg))
		}
	case RouteBlog:
		if r.Post != nil {
			schemas = append(schemas, blogPostingSchema(cfg, r.Post))
		}
	case RoutePortfolio:
		if r.Item != nil {
			schemas = append(schemas, portfolioSchema(cfg, r.Item))
		}
	}
	return schemas
}

// GenerateJsonLdScriptTags serializes each schema into its own
// <script type="application/ld+json"> element.
func GenerateJsonLdScriptTags(schemas []Schema) (string, error) {
	return views.RenderString(context.Background(), views.JsonLdScripts(schemas))
}

// WordCount estimates the number of words in a markdown body.
func WordCount(content string) int {
	return utf8.RuneCountInString(content) / wordCountDivisor
}

func websiteSchema(cfg SiteConfig) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      AbsoluteURL(cfg.URL, "/"),
	}
	if cfg.Description != "" {
		s["description"] = cfg.Description
	}
	if cfg.Language != "" {
		s["inLanguage"] = cfg.Language
	}
	if cfg.Author != "" {
		s["author"] = authorRef(cfg)
	}
	return s
}

func personSchema(cfg SiteConfig) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "Person",
		"name":     authorName(cfg),
		"url":      AbsoluteURL(cfg.URL, "/about"),
	}
	if cfg.Person.JobTitle != "" {
		s["jobTitle"] = cfg.Person.JobTitle
	}
	if cfg.Person.Description != "" {
		s["description"] = cfg.Person.Description
	}
	if img := ResolveURL(cfg.URL, cfg.Person.Image); img != "" {
		s["image"] = img
	}
	if cfg.AuthorEmail != "" {
		s["email"] = "mailto:" + cfg.AuthorEmail
	}
	if len(cfg.Person.SameAs) > 0 {
		s["sameAs"] = cfg.Person.SameAs
	}
	return s
}

func blogPostingSchema(cfg SiteConfig, p *BlogPost) Schema {
	postURL := AbsoluteURL(cfg.URL, BlogRoutePath(p.ID))
	s := Schema{
		"@context":      schemaContext,
		"@type":         "BlogPosting",
		"headline":      p.Title,
		"description":   p.Summary,
		"datePublished": p.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"author":         authorRef(cfg),
		"publisher":      map[string]string{"@type": "Organization", "name": cfg.Name},
		"articleSection": p.Category.String(),
		"wordCount":      WordCount(p.Content),
		"timeRequired":   fmt.Sprintf("PT%dM", p.ReadTimeOrDefault()),
	}
	if cfg.Language != "" {
		s["inLanguage"] = cfg.Language
	}
	if len(p.Tags) > 0 {
		s["keywords"] = JoinTags(p.Tags)
	}
	if img := ResolveURL(cfg.URL, firstNonEmpty(p.Image, cfg.Image)); img != "" {
		s["image"] = img
	}
	return s
}

// portfolioSchema selects the CreativeWork subtype by category.
func portfolioSchema(cfg SiteConfig, it *PortfolioItem) Schema {
	s := Schema{
		"@context": schemaContext,
		"name":     it.Title,
		"url":      AbsoluteURL(cfg.URL, PortfolioRoutePath(it.Category, it.ID)),
	}
	if it.Description != "" {
		s["description"] = it.Description
	}
	if y, ok := it.StartYear(); ok {
		s["dateCreated"] = strconv.Itoa(y)
	}
	if len(it.Tags) > 0 {
		s["keywords"] = JoinTags(it.Tags)
	}
	if img := ResolveURL(cfg.URL, it.Image); img != "" {
		s["image"] = img
	}

	switch it.Category {
	case PortfolioCoding:
		s["@type"] = "SoftwareApplication"
		s["author"] = authorRef(cfg)
		if it.Type != "" {
			s["applicationCategory"] = it.Type
		}
		if len(it.TechStack) > 0 {
			s["programmingLanguage"] = it.TechStack
		}
	case PortfolioMusic:
		s["@type"] = "MusicComposition"
		s["composer"] = authorRef(cfg)
	case PortfolioAcademic:
		s["@type"] = "ScholarlyArticle"
		s["headline"] = it.Title
		s["author"] = authorRef(cfg)
		if it.Award != "" {
			s["award"] = it.Award
		}
		if it.Venue != "" {
			s["publisher"] = map[string]string{"@type": "Organization", "name": it.Venue}
		}
	default:
		s["@type"] = "CreativeWork"
		s["author"] = authorRef(cfg)
	}
	return s
}

func authorName(cfg SiteConfig) string {
	if cfg.Author != "" {
		return cfg.Author
	}
	return cfg.Name
}

func authorRef(cfg SiteConfig) map[string]string {
	return map[string]string{
		"@type": "Person",
		"name":  authorName(cfg),
		"url":   AbsoluteURL(cfg.URL, "/about"),
	}
}
