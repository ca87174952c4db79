package folio

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedDoc struct {
	Channel struct {
		Title string `xml:"title"`
		Link  string `xml:"link"`
		Items []struct {
			Title      string   `xml:"title"`
			Link       string   `xml:"link"`
			GUID       string   `xml:"guid"`
			PubDate    string   `xml:"pubDate"`
			Categories []string `xml:"category"`
			Content    string   `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
		} `xml:"item"`
	} `xml:"channel"`
}

func feedContent(t *testing.T) *Content {
	t.Helper()
	f := newFixture(t)
	f.post(t, "a-old.md", "---\nid: old\ntitle: Old\ndate: 2023-05-01\ncategory: casual\n---\nOld post.\n")
	f.post(t, "b-hello.md", helloPost)
	f.post(t, "c-future.md", "---\nid: future\ntitle: Future\ndate: 2030-01-01\ncategory: casual\n---\n")
	f.item(t, "site.md", codingItem)
	c, err := LoadContent(f.cfg, discardLogger())
	require.NoError(t, err)
	return c
}

func TestFeedPostsNewestFirst(t *testing.T) {
	c := feedContent(t)
	posts := FeedPosts(c, testNow, 8)
	require.Len(t, posts, 2)
	assert.Equal(t, "hello", posts[0].ID)
	assert.Equal(t, "old", posts[1].ID)
}

func TestRenderFeed(t *testing.T) {
	cfg := jsonldConfig()
	cfg.AuthorEmail = "jane@example.com"
	cfg.Favicon = "/favicon.svg"
	c := feedContent(t)

	data, err := RenderFeed(cfg, c, testNow)
	require.NoError(t, err)
	out := string(data)

	var doc feedDoc
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "Site", doc.Channel.Title)
	assert.Equal(t, "https://example.com/", doc.Channel.Link)
	require.Len(t, doc.Channel.Items, 2)

	hello := doc.Channel.Items[0]
	assert.Equal(t, "Hello World", hello.Title)
	assert.Equal(t, "https://example.com/blog/hello", hello.Link)
	assert.Equal(t, "https://example.com/blog/hello", hello.GUID)
	assert.Equal(t, "Fri, 01 Mar 2024 00:00:00 +0800", hello.PubDate)
	assert.Equal(t, []string{"professional", "go", "web"}, hello.Categories)
	assert.Contains(t, hello.Content, `href="https://example.com/projects/coding/portfolio-site"`)
	assert.Contains(t, hello.Content, `href="https://example.com/notes/today.md"`)

	assert.Contains(t, out, "<![CDATA[")
	assert.Contains(t, out, `<atom:link href="https://example.com/feed.xml" rel="self" type="application/rss+xml"></atom:link>`)
	assert.Contains(t, out, "<webfeeds:icon>https://example.com/favicon.svg</webfeeds:icon>")
	assert.Contains(t, out, "<author>jane@example.com (Jane)</author>")
	assert.Contains(t, out, "<dc:creator>Jane</dc:creator>")
	assert.NotContains(t, out, "Future")
}

func TestRenderFeedWithoutFavicon(t *testing.T) {
	data, err := RenderFeed(jsonldConfig(), &Content{}, testNow)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "webfeeds")
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
}
