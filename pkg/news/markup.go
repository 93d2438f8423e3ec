package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText drops markup and decodes entities in provider snippets such as
// Naver's <b> highlights or the link lists in Google News descriptions.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
