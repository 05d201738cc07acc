// Package htmlutil strips HTML markup from legacy text fields.
package htmlutil

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
// Looks for opening tags like <p>, <br>, <div>, <b>, etc.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// whitespacePattern collapses runs of whitespace left behind by removed tags.
var whitespacePattern = regexp.MustCompile(`\s+`)

// containsHTML checks if a string appears to contain HTML markup.
func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// StripTags removes HTML markup from s, keeping only text content.
// Plain strings pass through unchanged.
func StripTags(s string) string {
	if s == "" || !containsHTML(s) {
		return s
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// io.EOF ends the document; on a parse error keep whatever
			// text was collected rather than failing the reshape.
			break
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}
