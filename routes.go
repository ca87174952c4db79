package folio

import (
	"errors"
	"log/slog"
	"time"
)

// Content is the set of records loaded for one build. It is rebuilt on every
// invocation and passed explicitly to every stage that needs it.
type Content struct {
	Posts []BlogPost
	Items []PortfolioItem
}

// LoadContent loads both content kinds. Per-file failures from either
// directory are joined into the returned error; the records that did load
// are still returned so callers can report on them.
func LoadContent(cfg SiteConfig, logger *slog.Logger) (*Content, error) {
	posts, postErr := LoadBlogPosts(cfg.BlogPath(), logger)
	items, itemErr := LoadPortfolioItems(cfg.PortfolioPath(), logger)
	return &Content{Posts: posts, Items: items}, errors.Join(postErr, itemErr)
}

// PublishedBlogPosts returns pointers to the posts visible at asOf, in
// loader order.
func (c *Content) PublishedBlogPosts(asOf time.Time, tzOffsetHours int) []*BlogPost {
	var out []*BlogPost
	for i := range c.Posts {
		if IsPublished(c.Posts[i].Date, asOf, tzOffsetHours) {
			out = append(out, &c.Posts[i])
		}
	}
	return out
}

// AllPortfolioItems returns pointers to every portfolio item. Portfolio
// items have no publication gate.
func (c *Content) AllPortfolioItems() []*PortfolioItem {
	out := make([]*PortfolioItem, 0, len(c.Items))
	for i := range c.Items {
		out = append(out, &c.Items[i])
	}
	return out
}

// FindPost returns the post with the given id.
func (c *Content) FindPost(id string) (*BlogPost, bool) {
	for i := range c.Posts {
		if c.Posts[i].ID == id {
			return &c.Posts[i], true
		}
	}
	return nil, false
}

// FindItem returns the portfolio item with the given id.
func (c *Content) FindItem(id string) (*PortfolioItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// StaticPage declares one static route together with its sitemap hints.
type StaticPage struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

var staticPages = []StaticPage{
	{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/about", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/contact", ChangeFreq: "yearly", Priority: 0.5},
	{Path: "/projects", ChangeFreq: "monthly", Priority: 0.9},
	{Path: "/projects/academic", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/projects/coding", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/projects/music", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/blog", ChangeFreq: "weekly", Priority: 0.9},
	{Path: "/bio", ChangeFreq: "monthly", Priority: 0.7},
}

// StaticPages returns the fixed static route list in declaration order.
func StaticPages() []StaticPage {
	out := make([]StaticPage, len(staticPages))
	copy(out, staticPages)
	return out
}

// BlogRoutePath is the route path of a blog post.
func BlogRoutePath(id string) string {
	return "/blog/" + id
}

// PortfolioRoutePath is the route path of a portfolio item.
func PortfolioRoutePath(category PortfolioCategory, id string) string {
	return "/projects/" + category.String() + "/" + id
}

// CheckIDs reports every id used by more than one record of the same kind,
// whether or not the records are published.
func (c *Content) CheckIDs() error {
	var errs []error
	posts := make(map[string]string, len(c.Posts))
	for _, p := range c.Posts {
		if first, ok := posts[p.ID]; ok {
			errs = append(errs, &DuplicateIDError{Kind: "blog", ID: p.ID, First: first, Second: p.SourcePath})
			continue
		}
		posts[p.ID] = p.SourcePath
	}
	items := make(map[string]string, len(c.Items))
	for _, it := range c.Items {
		if first, ok := items[it.ID]; ok {
			errs = append(errs, &DuplicateIDError{Kind: "portfolio", ID: it.ID, First: first, Second: it.SourcePath})
			continue
		}
		items[it.ID] = it.SourcePath
	}
	return errors.Join(errs...)
}

// CollectRoutes builds the route table: static routes in declaration order,
// then one route per post published at asOf, then one per portfolio item.
// Ids shared within a kind fail with *DuplicateIDError; a path produced
// twice is a *DuplicateRouteError.
func CollectRoutes(c *Content, asOf time.Time, tzOffsetHours int) ([]Route, error) {
	if err := c.CheckIDs(); err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(staticPages)+len(c.Posts)+len(c.Items))
	seen := make(map[string]int, cap(routes))

	add := func(r Route) error {
		if i, ok := seen[r.Path]; ok {
			return &DuplicateRouteError{Path: r.Path, First: routes[i].Source(), Second: r.Source()}
		}
		seen[r.Path] = len(routes)
		routes = append(routes, r)
		return nil
	}

	for _, p := range staticPages {
		if err := add(Route{Path: p.Path, Kind: RouteStatic}); err != nil {
			return nil, err
		}
	}
	for _, post := range c.PublishedBlogPosts(asOf, tzOffsetHours) {
		if err := add(Route{Path: BlogRoutePath(post.ID), Kind: RouteBlog, Post: post}); err != nil {
			return nil, err
		}
	}
	for _, item := range c.AllPortfolioItems() {
		if err := add(Route{Path: PortfolioRoutePath(item.Category, item.ID), Kind: RoutePortfolio, Item: item}); err != nil {
			return nil, err
		}
	}
	return routes, nil
}
