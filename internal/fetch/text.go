package fetch

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are elements whose boundaries separate words.
const blockSelectors = "br, p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, td, th"

// tagPattern matches an opening or closing HTML tag.
var tagPattern = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)

// PlainText reduces an HTML fragment to whitespace-normalized text.
// Text without tags only has its entities decoded, so a bare "<" is kept.
func PlainText(s string) string {
	if !tagPattern.MatchString(s) {
		return collapseWhitespace(html.UnescapeString(s))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockSelectors).Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})

	return collapseWhitespace(doc.Find("body").Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
