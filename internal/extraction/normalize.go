package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NormalizeText collapses whitespace runs to a single space, lowercases, and trims.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// noiseSelector lists elements whose text never belongs in the extracted content.
const noiseSelector = "script, style, noscript, template"

// HTMLToText strips markup from an HTML fragment and returns its normalized text.
func HTMLToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	doc.Find(noiseSelector).Remove()
	return NormalizeText(selectionText(doc.Selection)), nil
}

// selectionText returns the text of sel with a break between adjacent text nodes,
// so "<p>a</p><p>b</p>" reads "a b" rather than "ab".
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			sb.WriteString(s.Text())
			sb.WriteString("\n")
			return
		}
		sb.WriteString(selectionText(s))
	})
	return sb.String()
}
