package folio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eringen/folio/markdown"
)

// FeedFile is the RSS feed's name in the output directory.
const FeedFile = "feed.xml"

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	WebfeedNS string     `xml:"xmlns:webfeeds,attr,omitempty"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	Copyright     string    `xml:"copyright,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Generator     string    `xml:"generator"`
	AtomLink      atomLink  `xml:"atom:link"`
	Image         *rssImage `xml:"image,omitempty"`
	Icon          string    `xml:"webfeeds:icon,omitempty"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssContent struct {
	Value string `xml:",cdata"`
}

type rssItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        rssGUID    `xml:"guid"`
	Description string     `xml:"description"`
	Content     rssContent `xml:"content:encoded"`
	Author      string     `xml:"author,omitempty"`
	Creator     string     `xml:"dc:creator,omitempty"`
	PubDate     string     `xml:"pubDate"`
	Categories  []string   `xml:"category"`
}

// documentResolver resolves .md references in post bodies. A name matches a
// record id or its source file's base name; blog posts resolve only while
// published.
func (c *Content) documentResolver(asOf time.Time, tzOffsetHours int) markdown.Resolver {
	return markdown.ResolverFunc(func(name string) (string, bool) {
		for _, p := range c.PublishedBlogPosts(asOf, tzOffsetHours) {
			if p.ID == name || sourceName(p.SourcePath) == name {
				return BlogRoutePath(p.ID), true
			}
		}
		for _, it := range c.AllPortfolioItems() {
			if it.ID == name || sourceName(it.SourcePath) == name {
				return PortfolioRoutePath(it.Category, it.ID), true
			}
		}
		return "", false
	})
}

func sourceName(p string) string {
	if p == "" {
		return ""
	}
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FeedPosts returns the posts published at asOf, newest first. Posts sharing
// a date keep loader order.
func FeedPosts(c *Content, asOf time.Time, tzOffsetHours int) []*BlogPost {
	posts := c.PublishedBlogPosts(asOf, tzOffsetHours)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts
}

// RenderFeed builds the RSS 2.0 document for the posts published at asOf.
func RenderFeed(cfg SiteConfig, c *Content, asOf time.Time) ([]byte, error) {
	loc := cfg.Location()
	home := AbsoluteURL(cfg.URL, "/")
	md := markdown.NewRenderer(cfg.URL, c.documentResolver(asOf, cfg.TimezoneOffset))

	posts := FeedPosts(c, asOf, cfg.TimezoneOffset)
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		body, err := md.Render(p.Content)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.ID, err)
		}
		pubDate := ""
		if d, ok := parseDate(p.Date); ok {
			pubDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).Format(time.RFC1123Z)
		}
		postURL := AbsoluteURL(cfg.URL, BlogRoutePath(p.ID))
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			GUID:        rssGUID{Value: postURL, IsPermaLink: true},
			Description: p.Summary,
			Content:     rssContent{Value: body},
			Creator:     authorName(cfg),
			PubDate:     pubDate,
			Categories:  append([]string{p.Category.String()}, p.Tags...),
		}
		if cfg.AuthorEmail != "" {
			item.Author = fmt.Sprintf("%s (%s)", cfg.AuthorEmail, authorName(cfg))
		}
		items = append(items, item)
	}

	channel := rssChannel{
		Title:         cfg.Name,
		Link:          home,
		Description:   cfg.Description,
		Language:      cfg.Language,
		Copyright:     cfg.Copyright,
		LastBuildDate: asOf.In(loc).Format(time.RFC1123Z),
		Generator:     "folio",
		AtomLink: atomLink{
			Href: AbsoluteURL(cfg.URL, "/"+FeedFile),
			Rel:  "self",
			Type: "application/rss+xml",
		},
		Icon:  ResolveURL(cfg.URL, cfg.Favicon),
		Items: items,
	}
	if img := ResolveURL(cfg.URL, cfg.Image); img != "" {
		channel.Image = &rssImage{URL: img, Title: cfg.Name, Link: home}
	}

	feed := rssXML{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		AtomNS:    "http://www.w3.org/2005/Atom",
		DCNS:      "http://purl.org/dc/elements/1.1/",
		Channel:   channel,
	}
	if channel.Icon != "" {
		feed.WebfeedNS = "http://webfeeds.org/rss/1.0"
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFeed writes feed.xml into the output directory and returns the number
// of bytes written.
func WriteFeed(cfg SiteConfig, c *Content, asOf time.Time) (int, error) {
	data, err := RenderFeed(cfg, c, asOf)
	if err != nil {
		return 0, err
	}
	if err := writeFile(filepath.Join(cfg.OutputDir, FeedFile), data); err != nil {
		return 0, err
	}
	return len(data), nil
}
