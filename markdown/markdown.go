// Package markdown renders post bodies to HTML for syndication. Links and
// images are rewritten to absolute site URLs so the output stands alone
// outside the site, e.g. inside a feed reader.
package markdown

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Resolver maps a markdown document name (file base name without the .md
// extension) to the route path of the record it holds.
type Resolver interface {
	ResolveDocument(name string) (routePath string, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (string, bool)

func (f ResolverFunc) ResolveDocument(name string) (string, bool) { return f(name) }

// Renderer converts markdown to HTML with link rewriting against one site.
type Renderer struct {
	siteURL  string
	resolver Resolver
	md       goldmark.Markdown
}

// NewRenderer returns a Renderer for the site at siteURL. resolver may be nil,
// in which case .md links are treated as plain relative links.
func NewRenderer(siteURL string, resolver Resolver) *Renderer {
	r := &Renderer{
		siteURL:  strings.TrimRight(siteURL, "/"),
		resolver: resolver,
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(&linkRewriter{rewrite: r.RewriteURL}, 100)),
		),
	)
	return r
}

// Component returns a templ.Component that renders src as HTML.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.md.Convert([]byte(RewriteWikiLinks(src)), w)
	})
}

// Render returns the HTML for src.
func (r *Renderer) Render(src string) (string, error) {
	var b strings.Builder
	if err := r.Component(src).Render(context.Background(), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

var reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// RewriteURL makes a link destination absolute:
//
//   - fragments, protocol-relative and scheme URLs are kept
//   - root-relative paths are prefixed with the site URL
//   - links to .md documents known to the resolver become their route URL
//   - any other relative path is cleaned against the site root
func (r *Renderer) RewriteURL(dest string) string {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") || reScheme.MatchString(dest) {
		return dest
	}
	if strings.HasPrefix(dest, "/") {
		return r.siteURL + dest
	}

	p, suffix := splitSuffix(dest)
	if strings.EqualFold(path.Ext(p), ".md") && r.resolver != nil {
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if route, ok := r.resolver.ResolveDocument(name); ok {
			return r.siteURL + route + suffix
		}
	}
	return r.siteURL + path.Clean("/"+p) + suffix
}

// splitSuffix separates the path of a relative reference from its query and
// fragment.
func splitSuffix(dest string) (string, string) {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i], dest[i:]
	}
	return dest, ""
}

type linkRewriter struct {
	rewrite func(string) string
}

func (t *linkRewriter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = []byte(t.rewrite(string(node.Destination)))
		case *ast.Image:
			node.Destination = []byte(t.rewrite(string(node.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

var (
	reWikiLink = regexp.MustCompile(`(!?)\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)
	reFence    = regexp.MustCompile("^\\s*(```|~~~)")
)

// RewriteWikiLinks converts wiki-style references into standard markdown:
// [[note]] and [[note|alias]] become links to note.md, ![[img.png]] becomes
// an image. Fenced code blocks are left untouched.
func RewriteWikiLinks(src string) string {
	if !strings.Contains(src, "[[") {
		return src
	}
	lines := strings.SplitAfter(src, "\n")
	var fence string
	for i, line := range lines {
		if m := reFence.FindStringSubmatch(line); m != nil {
			switch fence {
			case "":
				fence = m[1]
			case m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		lines[i] = reWikiLink.ReplaceAllStringFunc(line, wikiToMarkdown)
	}
	return strings.Join(lines, "")
}

func wikiToMarkdown(m string) string {
	parts := reWikiLink.FindStringSubmatch(m)
	image, target, alias := parts[1] == "!", strings.TrimSpace(parts[2]), strings.TrimSpace(parts[3])

	if image {
		if alias == "" {
			alias = strings.TrimSuffix(path.Base(target), path.Ext(target))
		}
		return "![" + alias + "](<" + target + ">)"
	}

	doc, anchor, _ := strings.Cut(target, "#")
	if alias == "" {
		alias = doc
	}
	if path.Ext(doc) == "" {
		doc += ".md"
	}
	if anchor != "" {
		doc += "#" + anchor
	}
	return "[" + alias + "](<" + doc + ">)"
}
