package sonet

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/microcosm-cc/bluemonday"
)

// URLForPost returns the canonical link of a post relative to the site root
func URLForPost(baseURL string, postID int64) string {
	return fmt.Sprintf(
		"%s/posts/%d",
		strings.TrimSuffix(baseURL, "/"),
		postID,
	)
}

// URLForUser ...
func URLForUser(baseURL string, userID int64) string {
	return fmt.Sprintf(
		"%s/profile/%d",
		strings.TrimSuffix(baseURL, "/"),
		userID,
	)
}

// CleanPost cleans a post's text, replacing new lines with spaces and
// stripping surrounding spaces.
func CleanPost(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.TrimSpace(text)

	return text
}

// FormatPost formats a post's content into a valid HTML snippet
func FormatPost(text string) template.HTML {
	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	maybeUnsafeHTML := markdown.ToHTML([]byte(text), nil, renderer)
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("target").OnElements("a")
	html := p.SanitizeBytes(maybeUnsafeHTML)

	return template.HTML(html)
}

// PlainText strips any markup from text
func PlainText(text string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(text))
}

// Excerpt returns at most n runes of the cleaned plain text, marking
// truncation with an ellipsis
func Excerpt(text string, n int) string {
	text = CleanPost(PlainText(text))
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
