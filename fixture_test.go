package folio

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Portfolio</title>
<!-- SEO_META_START -->
<!-- SEO_META_END -->
<!-- JSON_LD -->
</head>
<body><div id="root"></div></body>
</html>
`

const helloPost = `---
id: hello
title: Hello World
date: 2024-03-01
summary: The first post.
category: professional
tags: [go, web]
---
Hello! See [[portfolio-site|my site]] and [the notes](notes/today.md).
`

const codingItem = `---
id: portfolio-site
title: Portfolio Site
category: coding
type: Web Application
year: 2023
description: This site.
techStack: [TypeScript, React]
tags: [web]
---
Built with care.
`

// testNow is 2024-03-15 in the default UTC+8 zone.
var testNow = time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type fixture struct {
	dir string
	cfg SiteConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Name = "Test Site"
	cfg.URL = "https://example.com"
	cfg.Description = "Research, code and music."
	cfg.Author = "Jane Doe"
	cfg.ContentDir = filepath.Join(dir, "content")
	cfg.OutputDir = filepath.Join(dir, "dist")
	cfg.TemplatePath = filepath.Join(cfg.OutputDir, "index.html")

	f := &fixture{dir: dir, cfg: cfg}
	writeTestFile(t, cfg.TemplatePath, testTemplate)
	return f
}

func (f *fixture) post(t *testing.T, name, content string) {
	t.Helper()
	writeTestFile(t, filepath.Join(f.cfg.BlogPath(), name), content)
}

func (f *fixture) item(t *testing.T, name, content string) {
	t.Helper()
	writeTestFile(t, filepath.Join(f.cfg.PortfolioPath(), name), content)
}

func (f *fixture) site() *Site {
	return New(f.cfg, WithLogger(discardLogger()), WithClock(func() time.Time { return testNow }))
}

func (f *fixture) out(parts ...string) string {
	return filepath.Join(append([]string{f.cfg.OutputDir}, parts...)...)
}
