package scanner

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"hrdigest/internal/digest"
)

// SearchScanner 站内搜索式来源（人民网搜索这类）：按关键词翻页抓结果块。
// 搜索站 robots 普遍要求低频访问，按域名限速。
type SearchScanner struct {
	SourceName string
	SearchURL  string // 例如 https://search.people.cn/s/
	Keyword    string
	Pages      int
	// 同域两次请求的最小间隔，0 不限速
	Delay    time.Duration
	MaxItems int
}

var searchBlockSelectors = []string{
	"div.content div[class*='news']",
	"div.content div[class*='result']",
	"div.search div",
	"div.article div",
}

func (s *SearchScanner) Name() string { return s.SourceName }

func (s *SearchScanner) Scan() ([]digest.RawCandidate, error) {
	pages := s.Pages
	if pages <= 0 {
		pages = 1
	}

	c := newCollector()
	if s.Delay > 0 {
		if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: s.Delay}); err != nil {
			return nil, err
		}
	}

	var out []digest.RawCandidate
	c.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			return
		}
		out = append(out, s.parseResults(doc, r.Request.URL.String())...)
	})

	for p := 1; p <= pages; p++ {
		if err := c.Visit(s.buildURL(p)); err != nil {
			if p == 1 {
				return nil, fmt.Errorf("%s: %w", s.SourceName, err)
			}
			break
		}
		// 第一页一条都没有时后面只会更旧，提前收
		if p == 1 && len(out) == 0 {
			break
		}
		if s.MaxItems > 0 && len(out) >= s.MaxItems {
			break
		}
	}
	if s.MaxItems > 0 && len(out) > s.MaxItems {
		out = out[:s.MaxItems]
	}
	return out, nil
}

func (s *SearchScanner) buildURL(page int) string {
	q := url.Values{}
	q.Set("keyword", s.Keyword)
	q.Set("page", itoa(page))
	return s.SearchURL + "?" + q.Encode()
}

func (s *SearchScanner) parseResults(doc *goquery.Document, pageURL string) []digest.RawCandidate {
	var blocks *goquery.Selection
	for _, sel := range searchBlockSelectors {
		blocks = doc.Find(sel)
		if blocks.Length() > 0 {
			break
		}
	}
	if blocks == nil || blocks.Length() == 0 {
		return nil
	}

	var out []digest.RawCandidate
	seen := make(map[string]struct{})
	blocks.Each(func(_ int, node *goquery.Selection) {
		a := node.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		title := squash(a.Text())
		if title == "" {
			return
		}
		full := absURL(pageURL, href)
		if _, dup := seen[full]; dup {
			return
		}

		raw := squash(node.Text())
		snippet := squash(node.Find("p").First().Text())
		if snippet == "" {
			snippet = truncRunes(raw, 160)
		}

		seen[full] = struct{}{}
		out = append(out, digest.RawCandidate{
			Title:       title,
			URL:         full,
			Source:      s.SourceName,
			RawDateText: raw,
			RawSnippet:  snippet,
			// 搜索词即命中词，合并时与其它来源的命中词取并集
			Keywords: []string{s.Keyword},
		})
	})
	return out
}

func truncRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
