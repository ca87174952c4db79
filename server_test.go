package folio

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, p *PreviewServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	p.Echo.ServeHTTP(rec, req)
	return rec
}

func TestPreviewServerServesOutputTree(t *testing.T) {
	f := newFixture(t)
	writeTestFile(t, f.out("about", "index.html"), "<p>about</p>")
	writeTestFile(t, f.out("sitemap.xml"), "<urlset/>")
	p := NewPreviewServer(f.site())

	rec := serve(t, p, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="root"></div>`)
	assert.Equal(t, "no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rec = serve(t, p, "/about")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>about</p>", rec.Body.String())

	rec = serve(t, p, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<urlset/>", rec.Body.String())
}

func TestPreviewServerNotFound(t *testing.T) {
	f := newFixture(t)
	p := NewPreviewServer(f.site())

	rec := serve(t, p, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	writeTestFile(t, f.out(NotFoundFile), "<h1>lost</h1>")
	rec = serve(t, p, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "<h1>lost</h1>", rec.Body.String())
}

func TestPreviewServerStatus(t *testing.T) {
	f := newFixture(t)
	p := NewPreviewServer(f.site())
	p.Record(BuildReport{BuildID: "abc", Routes: 3}, errors.New("boom"))

	rec := serve(t, p, "/_folio/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var st BuildStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "abc", st.BuildID)
	assert.False(t, st.OK)
	assert.Equal(t, "boom", st.Error)
	assert.Equal(t, 3, st.Routes)
}
