package scanner

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hrdigest/internal/resolve"
)

// 正文候选文本最多取这么多字符，发布时间几乎都在文首
const bodyProbeRunes = 400

// DetailEnricher 拉取详情页并从中解析权威发布时间
type DetailEnricher struct {
	Client *http.Client
}

func NewDetailEnricher() *DetailEnricher {
	return &DetailEnricher{Client: &http.Client{Timeout: requestTimeout}}
}

// ResolveURL 抓详情页，按固定优先级收集日期候选文本后统一解析；
// 页面本身没有信号时退回 Last-Modified。任何失败都按“没解析出来”处理。
func (e *DetailEnricher) ResolveURL(pageURL string, ref time.Time) *time.Time {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := e.Client.Do(req)
	if err != nil {
		log.Printf("detail fetch %s: %v", pageURL, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}
	return resolve.Resolve(
		DateCandidates(doc, pageURL),
		resp.Header.Get("Last-Modified"),
		ref,
	)
}

// DateCandidates 按固定优先级收集一个详情页里所有可能含发布时间的文本：
// 显式 time 元素 → 结构化 meta → 标题/头部文本 → 正文开头 → URL 路径。
// 顺序是契约的一部分：resolve 对拼接文本做整段扫描，位置影响冲突时的取舍。
func DateCandidates(doc *goquery.Document, pageURL string) []string {
	var cand []string
	add := func(s string) {
		if s = squash(s); s != "" {
			cand = append(cand, s)
		}
	}

	doc.Find("time[datetime]").Each(func(_ int, sel *goquery.Selection) {
		v, _ := sel.Attr("datetime")
		add(v)
	})
	doc.Find("meta[property='article:published_time'],meta[name='pubdate'],meta[name='publishdate'],meta[itemprop='datePublished']").
		Each(func(_ int, sel *goquery.Selection) {
			v, _ := sel.Attr("content")
			add(v)
		})
	for _, s := range []string{".time", ".date", ".pubtime", ".publish-time", ".post-time", ".info"} {
		doc.Find(s).Each(func(_ int, sel *goquery.Selection) {
			add(sel.Text())
		})
	}
	add(doc.Find("h1").First().Text())
	add(doc.Find("title").First().Text())

	body := []rune(squash(doc.Find("body").Text()))
	if len(body) > bodyProbeRunes {
		body = body[:bodyProbeRunes]
	}
	add(string(body))

	if u, err := url.Parse(pageURL); err == nil {
		add(strings.ReplaceAll(u.Path, "/", " "))
	}
	return cand
}
