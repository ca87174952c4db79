package folio

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBlogPosts(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "b.md"), "---\nid: 42\ntitle: Numbers\ndate: 2024-01-02\ncategory: casual\n---\nbody\n")
	writeTestFile(t, filepath.Join(dir, "a.md"), "---\nid: first\ntitle: First\ndate: \"2024-01-01\"\ncategory: Professional\nreadTime: 3\ntags: [go, \"\", web]\n---\n# Heading\n")
	writeTestFile(t, filepath.Join(dir, "_draft.md"), "---\nid: draft\ntitle: Draft\ndate: 2024-01-01\ncategory: casual\n---\n")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	posts, err := LoadBlogPosts(dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first, second := posts[0], posts[1]
	assert.Equal(t, "first", first.ID)
	assert.Equal(t, BlogProfessional, first.Category)
	assert.Equal(t, []string{"go", "web"}, first.Tags)
	assert.Equal(t, 3, first.ReadTime)
	assert.Equal(t, "# Heading\n", first.Content)
	assert.Equal(t, filepath.Join(dir, "a.md"), first.SourcePath)

	assert.Equal(t, "42", second.ID, "numeric ids are normalized to strings")
	assert.Equal(t, "2024-01-02", second.Date)
	assert.Equal(t, BlogCasual, second.Category)
	assert.Equal(t, DefaultReadTime, second.ReadTimeOrDefault())
}

func TestLoadBlogPostsWithByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "bom.md"), "\ufeff"+helloPost)

	posts, err := LoadBlogPosts(dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].ID)
}

func TestLoadBlogPostsMissingDir(t *testing.T) {
	posts, err := LoadBlogPosts(filepath.Join(t.TempDir(), "nope"), discardLogger())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLoadBlogPostsBadFileDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "good.md"), helloPost)
	writeTestFile(t, filepath.Join(dir, "unclosed.md"), "---\nid: x\ntitle: X\n")
	writeTestFile(t, filepath.Join(dir, "category.md"), "---\nid: y\ntitle: Y\ndate: 2024-01-01\ncategory: poetry\n---\n")

	posts, err := LoadBlogPosts(dir, discardLogger())
	require.Error(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].ID)

	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, []string{filepath.Join(dir, "category.md"), filepath.Join(dir, "unclosed.md")}, le.Path)
	assert.Contains(t, err.Error(), "unknown blog category")
}

func TestParseBlogPostValidation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing id", "title: T\ndate: 2024-01-01\ncategory: casual\n", `missing required field "id"`},
		{"missing date", "id: a\ntitle: T\ncategory: casual\n", `missing required field "date"`},
		{"bad date", "id: a\ntitle: T\ndate: someday\ncategory: casual\n", "not a YYYY-MM-DD"},
		{"missing title", "id: a\ndate: 2024-01-01\ncategory: casual\n", `missing required field "title"`},
		{"missing category", "id: a\ntitle: T\ndate: 2024-01-01\n", `missing required field "category"`},
		{"negative read time", "id: a\ntitle: T\ndate: 2024-01-01\ncategory: casual\nreadTime: -1\n", "readTime"},
		{"id with slash", "id: a/b\ntitle: T\ndate: 2024-01-01\ncategory: casual\n", "not a valid path segment"},
		{"id dot dot", "id: ..\ntitle: T\ndate: 2024-01-01\ncategory: casual\n", "not a valid path segment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBlogPost("x.md", []byte(tt.header), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadPortfolioItems(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "site.md"), codingItem)
	writeTestFile(t, filepath.Join(dir, "paper.md"), "---\nid: paper\ntitle: A Paper\ncategory: academic\nyear: 2021-2023\nvenue: ACL\naward: Best Paper\n---\n")

	items, err := LoadPortfolioItems(dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, items, 2)

	paper, site := items[0], items[1]
	assert.Equal(t, PortfolioAcademic, paper.Category)
	assert.Equal(t, "2021-2023", paper.Year)
	y, ok := paper.StartYear()
	assert.True(t, ok)
	assert.Equal(t, 2021, y)
	assert.Equal(t, "ACL", paper.Venue)

	assert.Equal(t, "portfolio-site", site.ID)
	assert.Equal(t, PortfolioCoding, site.Category)
	assert.Equal(t, []string{"TypeScript", "React"}, site.TechStack)
	assert.Equal(t, "2023", site.Year)
}

func TestParsePortfolioItemRejectsNonScalarYear(t *testing.T) {
	_, err := parsePortfolioItem("x.md", []byte("id: a\ntitle: T\ncategory: music\nyear: [2020, 2021]\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year must be a scalar")
}

func TestStartYear(t *testing.T) {
	tests := []struct {
		year string
		want int
		ok   bool
	}{
		{"2021", 2021, true},
		{"2022 - present", 2022, true},
		{"", 0, false},
		{"ongoing", 0, false},
	}
	for _, tt := range tests {
		it := PortfolioItem{Year: tt.year}
		got, ok := it.StartYear()
		assert.Equal(t, tt.ok, ok, tt.year)
		assert.Equal(t, tt.want, got, tt.year)
	}
}
