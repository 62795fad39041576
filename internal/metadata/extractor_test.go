package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/metadata"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtract_OpenGraphTags(t *testing.T) {
	server := servePage(t, `<html><head>
		<title>Fallback Title</title>
		<meta property="og:title" content="OG Title" />
		<meta property="og:description" content="OG description." />
		<meta property="og:image" content="https://cdn.example.com/cover.png" />
		<meta property="og:site_name" content="Example Site" />
	</head><body></body></html>`)

	extractor := metadata.NewExtractor(logger.NewNop())
	meta, err := extractor.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "OG Title", meta.Title)
	assert.Equal(t, "OG description.", meta.Description)
	assert.Equal(t, "https://cdn.example.com/cover.png", meta.ImageURL)
	assert.Equal(t, "Example Site", meta.SiteName)
	assert.Equal(t, server.URL, meta.URL)
}

func TestExtract_FallsBackToTitleElement(t *testing.T) {
	server := servePage(t, `<html><head>
		<title>  Plain Page Title  </title>
		<meta name="description" content="Standard description." />
	</head><body></body></html>`)

	extractor := metadata.NewExtractor(logger.NewNop())
	meta, err := extractor.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Plain Page Title", meta.Title)
	assert.Equal(t, "Standard description.", meta.Description)
	assert.Empty(t, meta.ImageURL)
}

func TestExtract_HostFallbackWhenNoTitle(t *testing.T) {
	server := servePage(t, `<html><head></head><body>no metadata here</body></html>`)

	extractor := metadata.NewExtractor(logger.NewNop())
	meta, err := extractor.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.NotEmpty(t, meta.Title, "host name fallback must produce a title")
}

func TestExtract_InvalidURL(t *testing.T) {
	extractor := metadata.NewExtractor(logger.NewNop())

	for _, bad := range []string{"", "not a url", "/relative/path", "example.com"} {
		_, err := extractor.Extract(context.Background(), bad)
		assert.Error(t, err, "URL %q should be rejected", bad)
	}
}

func TestExtract_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	extractor := metadata.NewExtractor(logger.NewNop())
	_, err := extractor.Extract(context.Background(), server.URL)
	assert.Error(t, err)
}
