// Package textutil provides text cleanup helpers for job posting content.
package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlTag matches an opening, closing or self-closing tag of a common HTML element
var htmlTag = regexp.MustCompile(`(?i)</?(p|div|span|br|hr|ul|ol|li|b|i|u|em|strong|a|h[1-6]|table|thead|tbody|tr|td|th|html|head|body|section|article|header|footer|img|code|pre|blockquote|script|style|noscript)\b[^<>]*>`)

// LooksLikeHTML reports whether text contains a known HTML element tag. Angle brackets
// around other words, as in "<x>" or "a < b", are not markup.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// HTMLToText strips tags, scripts and styles from an HTML fragment and collapses
// whitespace. Text without markup is returned unchanged.
func HTMLToText(content string) string {
	if !LooksLikeHTML(content) {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	doc.Find("script, style, noscript").Remove()

	// Block elements would otherwise glue adjacent words together
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr, td").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims the result
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
