package gnews

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jkwoo/feedwire/app/database"
	"github.com/jkwoo/feedwire/app/format"
)

// Description is the parsed form of a Google News item description: the
// related article list plus the rendered markdown body posted to the
// webhook.
type Description struct {
	RelatedItems []database.RelatedItem
	Rendered     string
	FullCoverage string
}

// ParseDescription parses the HTML description of a feed item. Each
// list entry becomes a related item with its redirect link resolved
// through resolver; the "full coverage" entry is pulled out separately
// and appended to the rendered body as a footer link.
func ParseDescription(ctx context.Context, htmlDesc string, resolver URLResolver) (*Description, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDesc))
	if err != nil {
		return nil, err
	}

	desc := &Description{}
	var lines []string

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := li.Text()
		if strings.Contains(text, "Google 뉴스에서 전체 콘텐츠 보기") ||
			strings.Contains(text, "View Full Coverage on Google News") {
			if href, ok := li.Find("a").First().Attr("href"); ok {
				desc.FullCoverage = href
			}
			return
		}

		anchor := li.Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		title := format.EscapeBrackets(anchor.Text())
		link := resolver.OriginalURL(ctx, href)
		press := li.Find(`font[color="#6f6f6f"]`).First().Text()

		desc.RelatedItems = append(desc.RelatedItems, database.RelatedItem{
			Title: title,
			URL:   link,
			Press: press,
		})
		if press != "" {
			lines = append(lines, "- ["+title+"](<"+link+">) | "+press)
		}
	})

	desc.Rendered = strings.Join(lines, "\n")
	if desc.FullCoverage != "" {
		desc.Rendered += "\n\n▶️ [Google 뉴스에서 전체 콘텐츠 보기](<" + desc.FullCoverage + ">)"
	}
	return desc, nil
}
