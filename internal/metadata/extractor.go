// Package metadata extracts page metadata from a URL so the admin surface
// can prefill portfolio entry forms.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/content-manager/internal/logger"
)

// defaultHTTPTimeout is the default timeout for HTTP requests.
const defaultHTTPTimeout = 30 * time.Second

// Metadata holds suggested form values extracted from a page.
type Metadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// Extractor fetches pages and pulls title/description/image hints.
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

// NewExtractor creates a metadata extractor.
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{
		logger: log,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Extract fetches the URL and extracts metadata for form prefilling.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Metadata, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Set user agent to avoid bot blocking
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ContentManager/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	meta := &Metadata{
		URL:         pageURL,
		Title:       e.extractTitle(doc, parsed),
		Description: metaContent(doc, "meta[property='og:description']", "meta[name='description']"),
		ImageURL:    metaContent(doc, "meta[property='og:image']"),
		SiteName:    metaContent(doc, "meta[property='og:site_name']"),
	}

	e.logger.Info("Metadata extraction complete",
		logger.String("url", pageURL),
		logger.String("title", meta.Title),
	)

	return meta, nil
}

// extractTitle tries OG title, then the title element, then falls back to
// the host name.
func (e *Extractor) extractTitle(doc *goquery.Document, parsed *url.URL) string {
	if title := metaContent(doc, "meta[property='og:title']"); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// metaContent returns the content attribute of the first selector that
// matches with a non-empty value.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, exists := doc.Find(selector).Attr("content"); exists {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}
