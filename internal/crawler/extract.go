package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MissingSrc is the sentinel asset reference recorded for image elements
// whose src attribute is absent or empty.
const MissingSrc = "MISSING_SRC"

// extractLinks returns the href targets of all anchors in the document,
// resolved against base, in document order. Only http/https links whose
// host (including port) matches seedHost are kept. Duplicates within one
// page are not suppressed here; the frontier deduplicates globally.
func extractLinks(doc *goquery.Selection, base *url.URL, seedHost string) []string {
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		resolved := base.ResolveReference(linkURL)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host != seedHost {
			return
		}

		links = append(links, resolved.String())
	})

	return links
}

// extractImageRefs returns the raw src attribute of every img element in
// document order. Elements with no src attribute, or an empty one, produce
// an empty string so the scanner can record them as malformed.
func extractImageRefs(doc *goquery.Selection) []string {
	var refs []string

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		refs = append(refs, strings.TrimSpace(s.AttrOr("src", "")))
	})

	return refs
}

// resolveImageURL resolves a non-empty image src against the page URL
func resolveImageURL(base *url.URL, src string) (string, bool) {
	srcURL, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(srcURL).String(), true
}
