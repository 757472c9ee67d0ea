package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zioncloud/docqa/internal/core/domain"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Union Address</title>
  <style>body { color: red; }</style>
  <script>console.log("noise");</script>
</head>
<body>
  <!-- navigation -->
  <h1>Union Address</h1>
  <p>Madam Speaker, Madam Vice President.</p>
  <p>Last year COVID-19 kept us apart. This year we are finally together again.</p>
</body>
</html>`

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches and strips html", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, DefaultUA, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(samplePage))
		}))
		defer server.Close()

		loader := New(Config{})
		doc, err := loader.Load(ctx, server.URL+"/speech")
		require.NoError(t, err)

		assert.Contains(t, doc.Content, "Madam Speaker, Madam Vice President.")
		assert.Contains(t, doc.Content, "finally together again")
		assert.NotContains(t, doc.Content, "<p>")
		assert.NotContains(t, doc.Content, "console.log")
		assert.NotContains(t, doc.Content, "color: red")

		assert.Equal(t, server.URL+"/speech", doc.Source)
		assert.Equal(t, "Union Address", doc.Metadata["title"])
	})

	t.Run("block elements become paragraph breaks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html><body><p>first</p><p>second</p></body></html>"))
		}))
		defer server.Close()

		loader := New(Config{})
		doc, err := loader.Load(ctx, server.URL)
		require.NoError(t, err)
		assert.Contains(t, doc.Content, "first\n\nsecond")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("just plain text"))
		}))
		defer server.Close()

		loader := New(Config{})
		doc, err := loader.Load(ctx, server.URL)
		require.NoError(t, err)
		assert.Equal(t, "just plain text", doc.Content)
	})

	t.Run("invalid url", func(t *testing.T) {
		loader := New(Config{})
		_, err := loader.Load(ctx, "not a url")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		loader := New(Config{})
		_, err := loader.Load(ctx, "ftp://example.com/file")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		loader := New(Config{})
		_, err := loader.Load(ctx, server.URL)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty page rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html><body><script>only()</script></body></html>"))
		}))
		defer server.Close()

		loader := New(Config{})
		_, err := loader.Load(ctx, server.URL)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestExtractText(t *testing.T) {
	t.Run("decodes entities", func(t *testing.T) {
		out := ExtractText("<p>fish &amp; chips</p>")
		assert.Equal(t, "fish & chips", out)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		out := ExtractText("<p>a   lot\t\tof   space</p>")
		assert.Equal(t, "a lot of space", out)
	})

	t.Run("drops comments", func(t *testing.T) {
		out := ExtractText("before <!-- hidden -->after")
		assert.Equal(t, "before after", out)
	})
}
