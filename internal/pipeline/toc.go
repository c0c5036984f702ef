package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TOCEntry is one navigation link. Children holds the h2 entries below
// an h1.
type TOCEntry struct {
	ID       string
	Text     string
	Children []TOCEntry
}

// BuildTOC lists h1 headings and, when maxLevel is 2 or more, the h2
// headings below each. Headings without an id are skipped; h2 headings
// before the first h1 are dropped.
func BuildTOC(fragment string, maxLevel int) ([]TOCEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered HTML: %w", err)
	}

	var toc []TOCEntry
	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			return
		}
		entry := TOCEntry{ID: id, Text: strings.TrimSpace(s.Text())}

		switch goquery.NodeName(s) {
		case "h1":
			toc = append(toc, entry)
		case "h2":
			if maxLevel < 2 || len(toc) == 0 {
				return
			}
			last := &toc[len(toc)-1]
			last.Children = append(last.Children, entry)
		}
	})
	return toc, nil
}
