package scanner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestPathPageURL(t *testing.T) {
	list := "https://www.mohrss.gov.cn/SYrlzyhshbzb/dongtaixinwen/buneiyaowen/rsxw/"
	if got := pathPageURL(list, 1); got != list {
		t.Fatalf("page 1 should be the list url itself, got %q", got)
	}
	want := "https://www.mohrss.gov.cn/SYrlzyhshbzb/dongtaixinwen/buneiyaowen/rsxw/index_2.html"
	if got := pathPageURL(list, 2); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// index.html 结尾的入口翻页要替换文件名
	withIndex := "https://example.gov.cn/news/index.html"
	if got := pathPageURL(withIndex, 3); got != "https://example.gov.cn/news/index_3.html" {
		t.Fatalf("got %q", got)
	}
}

func TestQueryPageURL(t *testing.T) {
	if got := queryPageURL("http://job.mohrss.gov.cn/zxss/index.jhtml", 2); got != "http://job.mohrss.gov.cn/zxss/index.jhtml?pageNo=2" {
		t.Fatalf("got %q", got)
	}
	if got := queryPageURL("http://a/b?x=1", 2); got != "http://a/b?x=1&pageNo=2" {
		t.Fatalf("got %q", got)
	}
	if got := queryPageURL("http://a/b", 1); got != "http://a/b" {
		t.Fatalf("page 1 should be untouched, got %q", got)
	}
}

func TestAbsURL(t *testing.T) {
	base := "https://www.mohrss.gov.cn/rsxw/index.html"
	if got := absURL(base, "./t20250915_1.html"); got != "https://www.mohrss.gov.cn/rsxw/t20250915_1.html" {
		t.Fatalf("got %q", got)
	}
	if got := absURL(base, "https://other.gov.cn/x"); got != "https://other.gov.cn/x" {
		t.Fatalf("absolute href should pass through, got %q", got)
	}
	if got := absURL(base, "  "); got != "" {
		t.Fatalf("blank href should yield empty, got %q", got)
	}
}

func TestMatchKeywords(t *testing.T) {
	hit, matched := matchKeywords(nil, "任意标题", "")
	if !hit || matched != nil {
		t.Fatalf("empty keyword list should match everything with no tags, got %v %v", hit, matched)
	}

	hit, matched = matchKeywords([]string{"人力资源", "外包"}, "关于人力资源服务业的通知", "")
	if !hit || len(matched) != 1 || matched[0] != "人力资源" {
		t.Fatalf("got %v %v", hit, matched)
	}

	// 英文关键词不区分大小写
	hit, matched = matchKeywords([]string{"HR"}, "2025 hr 行业报告", "")
	if !hit || matched[0] != "HR" {
		t.Fatalf("case-insensitive match failed: %v %v", hit, matched)
	}

	hit, _ = matchKeywords([]string{"社保"}, "无关标题", "无关摘要")
	if hit {
		t.Fatal("no keyword present, should not hit")
	}
}

const listHTML = `
<html><body>
<ul class="list">
  <li><a href="./t20250915_100.html">人力资源市场秩序专项整治启动</a><span>2025-09-15</span><p>整治摘要内容</p></li>
  <li><a href="./t20250914_101.html">就业服务进校园</a><span>2025-09-14</span></li>
  <li><a href="http://people.com.cn/outside.html">站外链接</a><span>2025-09-15</span></li>
  <li><a href="./t20250915_100.html">人力资源市场秩序专项整治启动（重复）</a><span>2025-09-15</span></li>
</ul>
</body></html>`

func TestColumnParseList(t *testing.T) {
	s := &ColumnScanner{
		SourceName: "人社部·人社新闻",
		AllowHost:  "mohrss.gov.cn",
	}
	doc := mustDoc(t, listHTML)
	items := s.parseList(doc, "https://www.mohrss.gov.cn/rsxw/index.html")

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (off-site and duplicate dropped): %+v", len(items), items)
	}
	first := items[0]
	if first.URL != "https://www.mohrss.gov.cn/rsxw/t20250915_100.html" {
		t.Fatalf("url = %q", first.URL)
	}
	if first.RawDateText != "2025-09-15" {
		t.Fatalf("raw date = %q", first.RawDateText)
	}
	if first.RawSnippet != "整治摘要内容" {
		t.Fatalf("snippet = %q", first.RawSnippet)
	}
	if first.Source != "人社部·人社新闻" {
		t.Fatalf("source = %q", first.Source)
	}
}

func TestColumnParseListKeywordFilter(t *testing.T) {
	s := &ColumnScanner{
		SourceName: "测试",
		Keywords:   []string{"人力资源"},
	}
	doc := mustDoc(t, listHTML)
	items := s.parseList(doc, "https://www.mohrss.gov.cn/rsxw/index.html")

	if len(items) != 1 {
		t.Fatalf("got %d items, want only the keyword hit: %+v", len(items), items)
	}
	if len(items[0].Keywords) != 1 || items[0].Keywords[0] != "人力资源" {
		t.Fatalf("matched keywords = %v", items[0].Keywords)
	}
}

const tableHTML = `
<html><body>
<table>
  <tr><td><a href="/zxss/1.jhtml">招聘资讯一</a></td><td>综合</td><td>2025-09-15</td></tr>
  <tr><td><a href="/zxss/2.jhtml">招聘资讯二</a></td><td>综合</td><td>2025-09-14</td></tr>
</table>
</body></html>`

func TestColumnParseListFallsBackToTableRows(t *testing.T) {
	s := &ColumnScanner{SourceName: "公共招聘网"}
	doc := mustDoc(t, tableHTML)
	items := s.parseList(doc, "http://job.mohrss.gov.cn/zxss/index.jhtml")

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].URL != "http://job.mohrss.gov.cn/zxss/1.jhtml" {
		t.Fatalf("url = %q", items[0].URL)
	}
	if items[0].RawDateText != "2025-09-15" {
		t.Fatalf("raw date should come from the last cell, got %q", items[0].RawDateText)
	}
}

func TestSearchBuildURL(t *testing.T) {
	s := &SearchScanner{SearchURL: "https://search.people.cn/s/", Keyword: "外包"}
	got := s.buildURL(2)
	if !strings.HasPrefix(got, "https://search.people.cn/s/?") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "page=2") || !strings.Contains(got, "keyword=") {
		t.Fatalf("missing query params: %q", got)
	}
}

func TestSearchParseResults(t *testing.T) {
	const html = `
<html><body><div class="content">
  <div class="news-item"><a href="/n1/2025/0915/c1-1.html">外包行业动态</a> 2025-09-15 09:00:00 <p>摘要一</p></div>
  <div class="news-item"><a href="/n1/2025/0915/c1-1.html">重复条目</a> 2025-09-15 09:00:00</div>
</div></body></html>`
	s := &SearchScanner{SourceName: "人民网（搜索）", Keyword: "外包"}
	items := s.parseResults(mustDoc(t, html), "https://search.people.cn/s/?keyword=x")

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 after url dedup: %+v", len(items), items)
	}
	it := items[0]
	if it.URL != "https://search.people.cn/n1/2025/0915/c1-1.html" {
		t.Fatalf("url = %q", it.URL)
	}
	if !strings.Contains(it.RawDateText, "2025-09-15") {
		t.Fatalf("raw date text should carry the block text, got %q", it.RawDateText)
	}
	if len(it.Keywords) != 1 || it.Keywords[0] != "外包" {
		t.Fatalf("search keyword should be recorded: %v", it.Keywords)
	}
}
