package crawler

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseFixture(t *testing.T, content string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc.Selection
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse URL %q: %v", raw, err)
	}
	return u
}

func TestExtractLinks(t *testing.T) {
	testCases := []struct {
		name        string
		htmlContent string
		base        string
		wantLinks   []string
	}{
		{
			name: "relative links resolved in document order",
			htmlContent: `<html><body>
				<a href="/about">About</a>
				<a href="contact.html">Contact</a>
				<a href="/about">About again</a>
			</body></html>`,
			base: "https://example.com/index.html",
			wantLinks: []string{
				"https://example.com/about",
				"https://example.com/contact.html",
				"https://example.com/about",
			},
		},
		{
			name: "other hosts filtered",
			htmlContent: `<html><body>
				<a href="https://example.com/keep">keep</a>
				<a href="https://other.com/drop">drop</a>
				<a href="https://sub.example.com/drop">drop</a>
			</body></html>`,
			base:      "https://example.com/",
			wantLinks: []string{"https://example.com/keep"},
		},
		{
			name: "port is part of the network location",
			htmlContent: `<html><body>
				<a href="http://example.com:8080/keep">keep</a>
				<a href="http://example.com/drop">drop</a>
			</body></html>`,
			base:      "http://example.com:8080/",
			wantLinks: []string{"http://example.com:8080/keep"},
		},
		{
			name: "non-http schemes filtered",
			htmlContent: `<html><body>
				<a href="mailto:a@example.com">mail</a>
				<a href="ftp://example.com/file">ftp</a>
				<a href="javascript:void(0)">js</a>
				<a href="/page">page</a>
			</body></html>`,
			base:      "https://example.com/",
			wantLinks: []string{"https://example.com/page"},
		},
		{
			name:        "no anchors",
			htmlContent: `<html><body><p>nothing here</p></body></html>`,
			base:        "https://example.com/",
			wantLinks:   nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseFixture(t, tc.htmlContent)
			base := mustParseURL(t, tc.base)

			got := extractLinks(doc, base, base.Host)
			if !reflect.DeepEqual(got, tc.wantLinks) {
				t.Errorf("extractLinks() = %v, want %v", got, tc.wantLinks)
			}
		})
	}
}

func TestExtractImageRefs(t *testing.T) {
	testCases := []struct {
		name        string
		htmlContent string
		wantRefs    []string
	}{
		{
			name: "document order with malformed elements",
			htmlContent: `<html><body>
				<img src="https://x/valid.jpg">
				<img src="">
				<img src="https://x/broken.jpg">
				<img>
			</body></html>`,
			wantRefs: []string{"https://x/valid.jpg", "", "https://x/broken.jpg", ""},
		},
		{
			name:        "relative src kept raw",
			htmlContent: `<html><body><img src="img/logo.png"></body></html>`,
			wantRefs:    []string{"img/logo.png"},
		},
		{
			name:        "no images",
			htmlContent: `<html><body><p>plain</p></body></html>`,
			wantRefs:    nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseFixture(t, tc.htmlContent)

			got := extractImageRefs(doc)
			if !reflect.DeepEqual(got, tc.wantRefs) {
				t.Errorf("extractImageRefs() = %v, want %v", got, tc.wantRefs)
			}
		})
	}
}

func TestResolveImageURL(t *testing.T) {
	base := mustParseURL(t, "https://example.com/blog/post.html")

	abs, ok := resolveImageURL(base, "../img/cat.png")
	if !ok {
		t.Fatal("resolveImageURL() reported failure for a valid src")
	}
	if abs != "https://example.com/img/cat.png" {
		t.Errorf("resolveImageURL() = %q, want %q", abs, "https://example.com/img/cat.png")
	}
}
