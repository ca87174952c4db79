package folio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHelloPost(t *testing.T) {
	f := newFixture(t)
	f.post(t, "hello.md", helloPost)
	f.item(t, "site.md", codingItem)

	report, err := f.site().Build(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.BuildID)
	assert.Equal(t, 11, report.Routes)
	assert.Equal(t, 11, report.Prerender.Success)
	assert.Equal(t, 1, report.PublishedPosts)
	assert.Equal(t, 1, report.Items)
	assert.Positive(t, report.BytesWritten())

	page := parseHTML(t, readTestFile(t, f.out("blog", "hello", "index.html")))
	assert.Equal(t, "Hello World | Test Site", page.Find("title").Text())
	href, _ := page.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://example.com/blog/hello", href)

	sitemap := readTestFile(t, f.out(SitemapFile))
	assert.Contains(t, sitemap, "<loc>https://example.com/blog/hello</loc>")
	i := strings.Index(sitemap, "<loc>https://example.com/blog/hello</loc>")
	entry := sitemap[i:]
	entry = entry[:strings.Index(entry, "</url>")]
	assert.Contains(t, entry, "<priority>0.6</priority>")
	assert.Contains(t, entry, "<lastmod>2024-03-01</lastmod>")

	feed := readTestFile(t, f.out(FeedFile))
	assert.Contains(t, feed, "<link>https://example.com/blog/hello</link>")

	app := readTestFile(t, f.out("projects", "coding", "portfolio-site", "index.html"))
	assert.Contains(t, app, `"@type":"SoftwareApplication"`)
	assert.Contains(t, app, `"programmingLanguage":["TypeScript","React"]`)
}

func TestBuildIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.post(t, "hello.md", helloPost)
	f.item(t, "site.md", codingItem)
	site := f.site()

	_, err := site.Build(context.Background())
	require.NoError(t, err)
	first := snapshot(t, f.cfg.OutputDir)

	_, err = site.Build(context.Background())
	require.NoError(t, err)
	second := snapshot(t, f.cfg.OutputDir)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(first["index.html"], MarkerJSONLDStart))
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		files[filepath.ToSlash(rel)] = string(data)
		return err
	})
	require.NoError(t, err)
	return files
}

func TestBuildUnpublishedPostHasNoRoute(t *testing.T) {
	f := newFixture(t)
	f.post(t, "later.md", "---\nid: later\ntitle: Later\ndate: 2024-03-16\ncategory: casual\n---\n")

	report, err := f.site().Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.PublishedPosts)
	assert.Equal(t, 1, report.Posts)
	assert.NoFileExists(t, f.out("blog", "later", "index.html"))
	assert.NotContains(t, readTestFile(t, f.out(FeedFile)), "Later")
}

func TestBuildFailsFastOnBadContent(t *testing.T) {
	f := newFixture(t)
	f.post(t, "hello.md", helloPost)
	f.post(t, "bad.md", "---\nid: bad\n")

	_, err := f.site().Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
	assert.NoFileExists(t, f.out("blog", "hello", "index.html"))
	assert.NoFileExists(t, f.out(SitemapFile))
}

func TestBuildDuplicateID(t *testing.T) {
	f := newFixture(t)
	f.post(t, "a.md", helloPost)
	f.post(t, "b.md", strings.Replace(helloPost, "date: 2024-03-01", "date: 2099-03-01", 1))

	_, err := f.site().Build(context.Background())
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "hello", dup.ID)
	assert.Equal(t, filepath.Join(f.cfg.BlogPath(), "a.md"), dup.First)
	assert.Equal(t, filepath.Join(f.cfg.BlogPath(), "b.md"), dup.Second)
	assert.NoFileExists(t, f.out("blog", "hello", "index.html"))
}

func TestBuildDuplicatePortfolioIDAcrossCategories(t *testing.T) {
	f := newFixture(t)
	f.item(t, "a.md", codingItem)
	f.item(t, "b.md", strings.Replace(codingItem, "category: coding", "category: music", 1))

	_, err := f.site().Build(context.Background())
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "portfolio", dup.Kind)
	assert.Equal(t, "portfolio-site", dup.ID)
}

func TestBuildMissingTemplate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.TemplatePath))

	_, err := f.site().Build(context.Background())
	assert.ErrorIs(t, err, ErrTemplateMissing)
}

func TestBuildLocked(t *testing.T) {
	f := newFixture(t)
	site := f.site()

	lock := flock.New(site.LockPath())
	ok, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer lock.Unlock()

	_, err = site.Build(context.Background())
	assert.ErrorIs(t, err, ErrBuildLocked)
}

func TestBuildCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.site().Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
