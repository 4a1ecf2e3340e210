package tools

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

var (
	reScript   = regexp.MustCompile(`(?is)<script[\s\S]*?</script>`)
	reStyle    = regexp.MustCompile(`(?is)<style[\s\S]*?</style>`)
	reBlockEnd = regexp.MustCompile(`(?is)</(p|div|li|h[1-6])>`)
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripHTMLTags removes all HTML tags and normalizes whitespace.
func stripHTMLTags(text string) string {
	text = reScript.ReplaceAllString(text, "")
	text = reStyle.ReplaceAllString(text, "")
	text = reBlockEnd.ReplaceAllString(text, "\n")
	text = reTags.ReplaceAllString(text, "")
	return normalizeWhitespace(unescapeEntities(text))
}

func normalizeWhitespace(text string) string {
	text = reSpaces.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ",
)

func unescapeEntities(s string) string { return entityReplacer.Replace(s) }

// htmlToText reduces an HTML fragment to readable text. readability is tried
// first; when it rejects the fragment, tags are stripped instead.
func htmlToText(fragment string, pageURL *url.URL) string {
	if !strings.Contains(fragment, "<") {
		return normalizeWhitespace(fragment)
	}
	doc := "<html><body><article>" + fragment + "</article></body></html>"
	article, err := readability.FromReader(strings.NewReader(doc), pageURL)
	if err == nil {
		if text := normalizeWhitespace(article.TextContent); text != "" {
			return text
		}
	}
	return stripHTMLTags(fragment)
}
