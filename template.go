package folio

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Slot names of the prerender template.
const (
	SlotTitle  = "title"
	SlotMeta   = "seo-meta"
	SlotJSONLD = "json-ld"
)

// Template markers. The SEO region keeps its delimiters on every render. The
// JSON-LD placeholder is rendered as a bounded start/end region so that a
// prerendered page can itself serve as the template of the next run.
const (
	MarkerMetaStart   = "<!-- SEO_META_START -->"
	MarkerMetaEnd     = "<!-- SEO_META_END -->"
	MarkerJSONLD      = "<!-- JSON_LD -->"
	MarkerJSONLDStart = "<!-- JSON_LD_START -->"
	MarkerJSONLDEnd   = "<!-- JSON_LD_END -->"
)

var (
	reTitle        = regexp.MustCompile(`(?is)<title\b[^>]*>(.*?)</title>`)
	reMetaRegion   = regexp.MustCompile(`(?s)<!--\s*SEO_META_START\s*-->(.*?)<!--\s*SEO_META_END\s*-->`)
	reJSONLDRegion = regexp.MustCompile(`(?s)<!--\s*JSON_LD_START\s*-->.*?<!--\s*JSON_LD_END\s*-->`)
	reJSONLDMarker = regexp.MustCompile(`<!--\s*JSON_LD\s*-->`)
	reHeadClose    = regexp.MustCompile(`(?i)</head>`)
)

// TemplateIssue describes a slot that could not be located as intended.
type TemplateIssue struct {
	Slot     string
	Err      error
	Degraded bool // the slot is left unmodified in every render
}

func (i TemplateIssue) String() string {
	return fmt.Sprintf("%s: %v", i.Slot, i.Err)
}

// Template is an HTML document split into literal text and named slots.
// Parse it once per build and Render it once per route.
type Template struct {
	parts  []templatePart
	issues []TemplateIssue
}

type templatePart struct {
	literal string
	slot    string // empty for literal parts
	orig    string // slot text found in the source
}

type span struct {
	start, end int
	slot       string
}

// ParseTemplate locates the title, SEO-meta and JSON-LD slots in src.
// Missing markers are recorded as issues rather than failing the parse.
func ParseTemplate(src string) *Template {
	t := &Template{}
	var spans []span

	if m := reTitle.FindStringSubmatchIndex(src); m != nil {
		spans = append(spans, span{m[2], m[3], SlotTitle})
	} else {
		t.issues = append(t.issues, TemplateIssue{Slot: SlotTitle, Err: fmt.Errorf("%w: <title> element", ErrMarkerMissing), Degraded: true})
	}

	if m := reMetaRegion.FindStringSubmatchIndex(src); m != nil {
		spans = append(spans, span{m[2], m[3], SlotMeta})
	} else {
		t.issues = append(t.issues, TemplateIssue{Slot: SlotMeta, Err: fmt.Errorf("%w: %s ... %s", ErrMarkerMissing, MarkerMetaStart, MarkerMetaEnd), Degraded: true})
	}

	switch {
	case reJSONLDRegion.MatchString(src):
		m := reJSONLDRegion.FindStringIndex(src)
		spans = append(spans, span{m[0], m[1], SlotJSONLD})
	case reJSONLDMarker.MatchString(src):
		m := reJSONLDMarker.FindStringIndex(src)
		spans = append(spans, span{m[0], m[1], SlotJSONLD})
	case reHeadClose.MatchString(src):
		m := reHeadClose.FindStringIndex(src)
		spans = append(spans, span{m[0], m[0], SlotJSONLD})
		t.issues = append(t.issues, TemplateIssue{Slot: SlotJSONLD, Err: fmt.Errorf("%w: %s, inserting before </head>", ErrMarkerMissing, MarkerJSONLD)})
	default:
		t.issues = append(t.issues, TemplateIssue{Slot: SlotJSONLD, Err: fmt.Errorf("%w: %s and </head>", ErrMarkerMissing, MarkerJSONLD), Degraded: true})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			// Overlapping markers (e.g. a title inside the SEO region): the
			// earlier slot wins.
			t.issues = append(t.issues, TemplateIssue{Slot: sp.slot, Err: fmt.Errorf("%w: overlaps another slot", ErrMarkerMissing), Degraded: true})
			continue
		}
		t.parts = append(t.parts, templatePart{literal: src[pos:sp.start]})
		t.parts = append(t.parts, templatePart{slot: sp.slot, orig: src[sp.start:sp.end]})
		pos = sp.end
	}
	t.parts = append(t.parts, templatePart{literal: src[pos:]})
	return t
}

// Issues returns the problems found while parsing.
func (t *Template) Issues() []TemplateIssue {
	return t.issues
}

// Degraded reports whether any slot will be rendered unmodified.
func (t *Template) Degraded() bool {
	for _, i := range t.issues {
		if i.Degraded {
			return true
		}
	}
	return false
}

// Render substitutes slot values. Values must already be HTML-safe. A slot
// without a value keeps its original text.
func (t *Template) Render(values map[string]string) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.slot == "" {
			b.WriteString(p.literal)
			continue
		}
		v, ok := values[p.slot]
		if !ok {
			b.WriteString(p.orig)
			continue
		}
		switch p.slot {
		case SlotMeta:
			b.WriteString("\n" + v + "\n")
		case SlotJSONLD:
			b.WriteString(MarkerJSONLDStart + "\n" + v + "\n" + MarkerJSONLDEnd)
			if p.orig == "" {
				// Inserted before </head>: keep the closing tag on its own line.
				b.WriteString("\n")
			}
		default:
			b.WriteString(v)
		}
	}
	return b.String()
}
