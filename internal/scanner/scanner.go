package scanner

import (
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// 站点扫描器：每个实现对应一类页面结构，产出 digest.RawCandidate。
// 政府站点普遍是老式静态页，选择器不稳定，解析一律“多候选逐个试”。

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

const requestTimeout = 20 * time.Second

func newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		// 部分站点仍是 GBK 编码
		colly.DetectCharset(),
	)
	c.SetRequestTimeout(requestTimeout)
	return c
}

// absURL 相对链接转绝对；解析失败原样返回
func absURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// pathPageURL 人社部栏目式分页：index.html、index_2.html、index_3.html...
func pathPageURL(listURL string, page int) string {
	if page <= 1 {
		return listURL
	}
	base := strings.TrimSuffix(listURL, "/")
	if strings.HasSuffix(base, ".html") {
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[:i]
		}
	}
	return base + "/index_" + itoa(page) + ".html"
}

// queryPageURL 公共招聘网式分页：?pageNo=2
func queryPageURL(listURL string, page int) string {
	if page <= 1 {
		return listURL
	}
	sep := "?"
	if strings.ContainsRune(listURL, '?') {
		sep = "&"
	}
	return listURL + sep + "pageNo=" + itoa(page)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// matchKeywords 返回在标题+摘要里命中的关键词；关键词为空表示不过滤，返回 nil
// 且视为命中。匹配不区分大小写（中文关键词不受影响，英文缩写常见大小写混写）。
func matchKeywords(keywords []string, title, snippet string) (hit bool, matched []string) {
	if len(keywords) == 0 {
		return true, nil
	}
	hay := strings.ToLower(title + " " + snippet)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(hay, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return len(matched) > 0, matched
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
