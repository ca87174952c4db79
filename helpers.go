package folio

import (
	"net/url"
	"strings"
)

// AbsoluteURL joins a site base URL with an absolute route path. The path
// is not given a trailing slash; the root path yields "<base>/".
func AbsoluteURL(base, routePath string) string {
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + routePath
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	u.Path = strings.TrimRight(u.Path, "/") + routePath
	return u.String()
}

// ResolveURL makes a site-relative reference (image, favicon) absolute.
// Values that already carry a scheme, and empty values, are returned as is.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	return AbsoluteURL(base, "/"+strings.TrimLeft(strings.TrimPrefix(ref, "./"), "/"))
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
