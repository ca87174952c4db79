package folio

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte("\ufeff")

// splitFrontMatter separates the `---` delimited YAML header from the
// markdown body. had is false when the document has no header at all. A
// leading byte order mark is ignored.
func splitFrontMatter(content []byte) (header, body []byte, had bool, err error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		tail := append(append([]byte{}, nl...), "---"...)
		if bytes.HasSuffix(content, tail) {
			return content[start : len(content)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

var dateLike = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([Tt ]|$)`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// scalarString coerces a front-matter scalar to a string. Date-like values
// (YAML timestamps or anything starting with YYYY-MM-DD) are normalized to
// YYYY-MM-DD so the parser's typing never leaks into identifiers. An absent
// key yields "".
func scalarString(n *yaml.Node) (string, error) {
	switch n.Kind {
	case 0:
		return "", nil
	case yaml.ScalarNode:
	default:
		return "", fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	if n.ShortTag() == "!!null" {
		return "", nil
	}
	if n.ShortTag() == "!!timestamp" || dateLike.MatchString(n.Value) {
		if d, ok := parseLooseDate(n.Value); ok {
			return d, nil
		}
	}
	return n.Value, nil
}

func parseLooseDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}
