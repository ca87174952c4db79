package folio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

type imageSize struct {
	width, height int
	ok            bool
}

// ImageProbe resolves og:image dimensions for images that live in the output
// tree. Results are memoized for the lifetime of the probe, which is one
// build: a site default image is decoded once no matter how many routes use
// it.
type ImageProbe struct {
	root    string
	siteURL *url.URL
	memo    map[string]imageSize
}

// NewImageProbe returns a probe that maps URLs under siteURL onto files
// below root.
func NewImageProbe(root, siteURL string) *ImageProbe {
	u, err := url.Parse(strings.TrimRight(siteURL, "/"))
	if err != nil {
		u = nil
	}
	return &ImageProbe{root: root, siteURL: u, memo: make(map[string]imageSize)}
}

// Dimensions returns the pixel size of the image at imageURL. It reports
// false for remote images, missing files and formats it cannot decode.
func (p *ImageProbe) Dimensions(imageURL string) (width, height int, ok bool) {
	if p == nil || imageURL == "" {
		return 0, 0, false
	}
	if s, hit := p.memo[imageURL]; hit {
		return s.width, s.height, s.ok
	}
	s := p.probe(imageURL)
	p.memo[imageURL] = s
	return s.width, s.height, s.ok
}

func (p *ImageProbe) probe(imageURL string) imageSize {
	file, ok := p.localFile(imageURL)
	if !ok {
		return imageSize{}
	}
	f, err := os.Open(file)
	if err != nil {
		return imageSize{}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return imageSize{}
	}
	return imageSize{width: cfg.Width, height: cfg.Height, ok: true}
}

// localFile maps an absolute URL on this site to a path below root.
func (p *ImageProbe) localFile(imageURL string) (string, bool) {
	if p.siteURL == nil {
		return "", false
	}
	u, err := url.Parse(imageURL)
	if err != nil || !strings.EqualFold(u.Host, p.siteURL.Host) {
		return "", false
	}
	rel := strings.TrimPrefix(u.Path, p.siteURL.Path)
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" || !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false
	}
	return filepath.Join(p.root, filepath.FromSlash(rel)), true
}
