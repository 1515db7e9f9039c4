package digest

import (
	"strings"
	"time"

	"hrdigest/internal/dateparse"
)

// RawCandidate 列表页扫出来的一条链接，归一化后即丢弃
type RawCandidate struct {
	Title       string
	URL         string
	Source      string
	RawDateText string
	RawSnippet  string
	// 命中的过滤关键词（同一 URL 被多个来源/关键词扫到时取并集）
	Keywords []string
}

// Item 归一化后的条目。CanonicalURL 去掉了 #fragment，是全局去重键；
// 一次运行内同一 CanonicalURL 至多保留一条（由 Merge 保证）。
// Timestamp 为 nil 表示所有日期信号都没解析出来。
type Item struct {
	Title        string     `json:"title"`
	CanonicalURL string     `json:"url"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Source       string     `json:"source"`
	Snippet      string     `json:"snippet,omitempty"`
	Keywords     []string   `json:"keywords,omitempty"`
}

// CanonicalURL 去掉 URL 尾部 fragment
func CanonicalURL(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Normalize 把原始候选折叠成条目，日期文本解析失败时 Timestamp 置 nil
func Normalize(rc RawCandidate, ref time.Time) Item {
	return Item{
		Title:        strings.TrimSpace(rc.Title),
		CanonicalURL: CanonicalURL(rc.URL),
		Timestamp:    dateparse.Parse(rc.RawDateText, ref),
		Source:       rc.Source,
		Snippet:      strings.TrimSpace(rc.RawSnippet),
		Keywords:     rc.Keywords,
	}
}
