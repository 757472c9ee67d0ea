// Package web loads documents by fetching a URL and reducing the HTML
// to readable text.
package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
	DefaultUA      = "docqa/1.0"

	// MaxBodySize caps how much of a response we read (16 MiB).
	MaxBodySize = 16 << 20
)

// Config holds configuration for the web loader.
type Config struct {
	// Timeout is the fetch timeout (default: 30s).
	Timeout time.Duration

	// UserAgent is sent with every request (default: docqa/1.0).
	UserAgent string

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// Loader fetches web pages and converts them to plain text documents.
type Loader struct {
	client    *http.Client
	userAgent string
}

// New creates a new web loader.
func New(cfg Config) *Loader {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUA
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Loader{
		client:    client,
		userAgent: cfg.UserAgent,
	}
}

// Load fetches the page at rawURL. The document's Source is the full
// URL and Directory its host.
func (l *Loader) Load(ctx context.Context, rawURL string) (*domain.Document, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL %q", domain.ErrInvalidInput, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidInput, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %q returned status %d", domain.ErrInvalidInput, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", rawURL, err)
	}

	content := string(body)
	if isHTML(resp.Header.Get("Content-Type"), content) {
		content = ExtractText(content)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: %q has no readable text", domain.ErrInvalidInput, rawURL)
	}

	return &domain.Document{
		ID:        uuid.New().String(),
		Source:    rawURL,
		Directory: parsed.Host,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Metadata: map[string]any{
			"loader": "web",
			"title":  pageTitle(string(body), rawURL),
		},
	}, nil
}

// isHTML reports whether the response should be treated as markup.
func isHTML(contentType, body string) bool {
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

var (
	invisibleTags = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBreaks   = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|ul|ol|tr|blockquote|pre|table|section|article)[^>]*>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	runSpaces     = regexp.MustCompile(`[ \t]+`)
	runNewlines   = regexp.MustCompile(`\n{3,}`)
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

// ExtractText strips markup from an HTML page, keeping block boundaries
// as newlines so that paragraph separators survive for chunking.
func ExtractText(page string) string {
	page = invisibleTags.ReplaceAllString(page, "")
	page = htmlComments.ReplaceAllString(page, "")
	page = blockBreaks.ReplaceAllString(page, "\n")
	page = anyTag.ReplaceAllString(page, "")
	page = html.UnescapeString(page)

	page = runSpaces.ReplaceAllString(page, " ")

	lines := strings.Split(page, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	page = strings.Join(lines, "\n")
	page = runNewlines.ReplaceAllString(page, "\n\n")

	return strings.TrimSpace(page)
}

// pageTitle pulls the <title> text, falling back to the URL.
func pageTitle(page, rawURL string) string {
	if m := titleTag.FindStringSubmatch(page); len(m) > 1 {
		if title := strings.TrimSpace(html.UnescapeString(m[1])); title != "" {
			return title
		}
	}
	return rawURL
}
