package scanner

import (
	"strings"
	"testing"
)

func TestDateCandidatesPrecedence(t *testing.T) {
	const html = `
<html>
<head>
  <title>某通知 2025-09-10 - 某站</title>
  <meta property="article:published_time" content="2025-09-14T09:00:00+08:00">
</head>
<body>
  <h1>某通知标题</h1>
  <div class="info">发布时间：2025-09-15 08:30 来源：某厅</div>
  <time datetime="2025-09-16 07:00">昨天</time>
  <div>正文开头 2025-09-01 提到的旧日期</div>
</body>
</html>`
	cand := DateCandidates(mustDoc(t, html), "https://x.gov.cn/2025/0916/c1.html")
	if len(cand) == 0 {
		t.Fatal("no candidates collected")
	}

	// time[datetime] 排最前，meta 其次，.info 再次，正文最后
	idx := func(sub string) int {
		for i, c := range cand {
			if strings.Contains(c, sub) {
				return i
			}
		}
		return -1
	}
	iTime := idx("2025-09-16 07:00")
	iMeta := idx("2025-09-14T09:00")
	iInfo := idx("2025-09-15 08:30")
	iBody := idx("2025-09-01")
	if iTime == -1 || iMeta == -1 || iInfo == -1 || iBody == -1 {
		t.Fatalf("missing expected candidates: %v", cand)
	}
	if !(iTime < iMeta && iMeta < iInfo && iInfo < iBody) {
		t.Fatalf("precedence wrong: time=%d meta=%d info=%d body=%d\n%v",
			iTime, iMeta, iInfo, iBody, cand)
	}
}

func TestDateCandidatesURLPathAsLastResort(t *testing.T) {
	const html = `<html><body><p>无任何日期</p></body></html>`
	cand := DateCandidates(mustDoc(t, html), "https://x.gov.cn/2025-09/16/c1.html")

	last := cand[len(cand)-1]
	if !strings.Contains(last, "2025-09") {
		t.Fatalf("url path should be the final candidate, got %v", cand)
	}
	if strings.Contains(last, "/") {
		t.Fatalf("path separators should be spaced out: %q", last)
	}
}
