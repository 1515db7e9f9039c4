package scanner

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"hrdigest/internal/digest"
)

// 列表节点的选择器候选链，按命中率排序；整条链都落空再兜底扫全页 a
var defaultListSelectors = []string{
	".list li", ".news-list li", ".content-list li", ".box-list li",
	"ul.list li", "ul.news li", "ul li", "table tr",
}

// 条目里日期文本的常见落点
var dateTextSelectors = []string{"span", "em", "td:last-child", ".date", ".time"}

// ColumnScanner 抓一个固定栏目的列表页（人社部人社新闻、公共招聘网资讯这类），
// 支持翻页与可选的详情页补时。
type ColumnScanner struct {
	SourceName string
	ListURL    string
	Pages      int
	// path: index_2.html 式分页；query: ?pageNo=2 式分页
	PageStyle string
	Selectors []string
	Keywords  []string
	// 站内域名限定，空则不限制
	AllowHost string
	// 列表页没给日期时进详情页补一次时间
	Enricher *DetailEnricher
	MaxItems int
}

func (s *ColumnScanner) Name() string { return s.SourceName }

func (s *ColumnScanner) Scan() ([]digest.RawCandidate, error) {
	pages := s.Pages
	if pages <= 0 {
		pages = 1
	}

	var (
		out     []digest.RawCandidate
		lastErr error
	)
	c := newCollector()
	c.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			lastErr = fmt.Errorf("parse %s: %w", r.Request.URL, err)
			return
		}
		out = append(out, s.parseList(doc, r.Request.URL.String())...)
	})

	for p := 1; p <= pages; p++ {
		pageURL := s.pageURL(p)
		if err := c.Visit(pageURL); err != nil {
			if p == 1 {
				return nil, fmt.Errorf("%s: visit %s: %w", s.SourceName, pageURL, err)
			}
			// 翻到不存在的页很常见，带着已抓到的结果返回
			log.Printf("%s: page %d stop: %v", s.SourceName, p, err)
			break
		}
		if lastErr != nil {
			return nil, lastErr
		}
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
	s.enrich(out)
	return out, nil
}

func (s *ColumnScanner) pageURL(page int) string {
	if s.PageStyle == "query" {
		return queryPageURL(s.ListURL, page)
	}
	return pathPageURL(s.ListURL, page)
}

// parseList 在一个列表页文档里扫条目。选择器逐个试，第一个有产出的生效
func (s *ColumnScanner) parseList(doc *goquery.Document, pageURL string) []digest.RawCandidate {
	selectors := s.Selectors
	if len(selectors) == 0 {
		selectors = defaultListSelectors
	}
	for _, sel := range selectors {
		if items := s.parseNodes(doc.Find(sel), pageURL); len(items) > 0 {
			return items
		}
	}
	// 兜底：全页 a，只保留能在邻近文本里找到日期信号的
	return s.parseNodes(doc.Find("a").Parent(), pageURL)
}

func (s *ColumnScanner) parseNodes(sel *goquery.Selection, pageURL string) []digest.RawCandidate {
	var out []digest.RawCandidate
	seen := make(map[string]struct{})

	sel.Each(func(_ int, node *goquery.Selection) {
		a := node
		if !node.Is("a") {
			a = node.Find("a").First()
		}
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		title := squash(a.Text())
		if title == "" {
			return
		}
		full := absURL(pageURL, href)
		if full == "" || strings.HasPrefix(full, "javascript:") {
			return
		}
		if s.AllowHost != "" {
			if u, err := url.Parse(full); err != nil || !strings.HasSuffix(strings.ToLower(u.Hostname()), s.AllowHost) {
				return
			}
		}
		if _, dup := seen[full]; dup {
			return
		}

		dateText := ""
		for _, ds := range dateTextSelectors {
			if t := squash(node.Find(ds).First().Text()); t != "" {
				dateText = t
				break
			}
		}
		if dateText == "" {
			dateText = squash(node.Text())
		}

		snippet := squash(node.Find("p").First().Text())
		hit, matched := matchKeywords(s.Keywords, title, snippet)
		if !hit {
			return
		}

		seen[full] = struct{}{}
		out = append(out, digest.RawCandidate{
			Title:       title,
			URL:         full,
			Source:      s.SourceName,
			RawDateText: dateText,
			RawSnippet:  snippet,
			Keywords:    matched,
		})
	})
	return out
}

// enrich 对列表页没拿到日期的条目进详情页补一次发布时间
func (s *ColumnScanner) enrich(items []digest.RawCandidate) {
	if s.Enricher == nil {
		return
	}
	ref := time.Now()
	for i := range items {
		if items[i].RawDateText != "" && strings.ContainsAny(items[i].RawDateText, "0123456789") {
			continue
		}
		if ts := s.Enricher.ResolveURL(items[i].URL, ref); ts != nil {
			items[i].RawDateText = ts.Format("2006-01-02 15:04")
		}
	}
}
