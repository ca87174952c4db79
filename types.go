package folio

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/eringen/folio/views"
)

// BlogCategory is the closed set of blog post categories.
type BlogCategory int

const (
	BlogProfessional BlogCategory = iota + 1
	BlogCreative
	BlogCasual
)

func (c BlogCategory) String() string {
	switch c {
	case BlogProfessional:
		return "professional"
	case BlogCreative:
		return "creative"
	case BlogCasual:
		return "casual"
	}
	return ""
}

// ParseBlogCategory maps a front-matter value onto a BlogCategory.
func ParseBlogCategory(s string) (BlogCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "professional":
		return BlogProfessional, nil
	case "creative":
		return BlogCreative, nil
	case "casual":
		return BlogCasual, nil
	}
	return 0, fmt.Errorf("unknown blog category %q", s)
}

// PortfolioCategory is the closed set of portfolio categories. Each variant
// owns one static listing route and one JSON-LD schema type.
type PortfolioCategory int

const (
	PortfolioAcademic PortfolioCategory = iota + 1
	PortfolioCoding
	PortfolioMusic
)

// PortfolioCategories lists every category in route declaration order.
var PortfolioCategories = []PortfolioCategory{PortfolioAcademic, PortfolioCoding, PortfolioMusic}

func (c PortfolioCategory) String() string {
	switch c {
	case PortfolioAcademic:
		return "academic"
	case PortfolioCoding:
		return "coding"
	case PortfolioMusic:
		return "music"
	}
	return ""
}

// ParsePortfolioCategory maps a front-matter value onto a PortfolioCategory.
func ParsePortfolioCategory(s string) (PortfolioCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "academic":
		return PortfolioAcademic, nil
	case "coding":
		return PortfolioCoding, nil
	case "music":
		return PortfolioMusic, nil
	}
	return 0, fmt.Errorf("unknown portfolio category %q", s)
}

// DefaultReadTime is used by consumers that need a read time when a post
// does not declare one.
const DefaultReadTime = 5

// BlogPost is a dated article loaded from the blog content directory.
type BlogPost struct {
	ID       string
	Title    string
	Date     string // YYYY-MM-DD
	Summary  string
	Category BlogCategory
	Tags     []string
	Featured bool
	ReadTime int // minutes, 0 when not declared
	Image    string
	Content  string // raw markdown

	SourcePath string
}

// ReadTimeOrDefault returns the declared read time or DefaultReadTime.
func (p *BlogPost) ReadTimeOrDefault() int {
	if p.ReadTime > 0 {
		return p.ReadTime
	}
	return DefaultReadTime
}

// PortfolioItem is a project entry loaded from the portfolio content directory.
type PortfolioItem struct {
	ID          string
	Title       string
	Category    PortfolioCategory
	Type        string
	Year        string
	Description string
	Featured    bool
	Tags        []string
	TechStack   []string
	Tools       []string
	Award       string
	Venue       string
	Image       string
	Content     string

	SourcePath string
}

// StartYear parses the leading integer of Year ("2021", "2021-2023",
// "2022 - present"). ok is false when Year does not start with a digit.
func (it *PortfolioItem) StartYear() (year int, ok bool) {
	s := strings.TrimSpace(it.Year)
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return y, true
}

// RouteKind says where a route comes from.
type RouteKind int

const (
	RouteStatic RouteKind = iota
	RouteBlog
	RoutePortfolio
)

func (k RouteKind) String() string {
	switch k {
	case RouteBlog:
		return "blog"
	case RoutePortfolio:
		return "portfolio"
	}
	return "static"
}

// Route is one prerenderable path. Post and Item borrow the record the route
// was derived from; they are nil for static routes.
type Route struct {
	Path string
	Kind RouteKind
	Post *BlogPost
	Item *PortfolioItem
}

// Source describes where the route came from, for error messages.
func (r Route) Source() string {
	switch {
	case r.Post != nil:
		return r.Post.SourcePath
	case r.Item != nil:
		return r.Item.SourcePath
	}
	return "static route list"
}

// PageMeta is the per-route SEO descriptor.
type PageMeta = views.PageMeta

// Schema is a single JSON-LD object.
type Schema = views.Schema
