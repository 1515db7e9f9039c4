package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"hrdigest/internal/window"
)

// Markdown 报告格式沿用钉钉推送的版式：日期+星期抬头、编号条目、
// [标题](链接)、来源斜体、时间戳行内代码、摘要引用行。

// 摘要按显示宽度截断，中文算两列，避免长文案刷屏
const snippetMaxWidth = 120

var zhWeekdays = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

func zhWeekday(t time.Time) string {
	return zhWeekdays[int(t.Weekday())]
}

// 标题里的半角方括号会破坏 markdown 链接语法，换成全角
var titleEscaper = strings.NewReplacer("[", "［", "]", "］")

// Render 渲染最终报告文本。
// 排序键 (时间戳倒序, 标题正序)，无时间戳的条目用零点哨兵排到最后；
// cap 在排序后截断，cap <= 0 表示不限。空集合输出明确的“暂无更新”行。
func Render(items []Item, w window.Window, cap int, now time.Time) string {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := tsOrZero(sorted[i].Timestamp), tsOrZero(sorted[j].Timestamp)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].Title < sorted[j].Title
	})
	if cap > 0 && len(sorted) > cap {
		sorted = sorted[:cap]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**日期：%s（%s）**\n\n", now.Format("2006-01-02"), zhWeekday(now))
	fmt.Fprintf(&b, "**标题：早安资讯｜%s**\n\n", w.Label)
	b.WriteString("**主要内容**\n")

	if len(sorted) == 0 {
		b.WriteString("> 暂无更新。\n")
		return b.String()
	}

	for i, it := range sorted {
		fmt.Fprintf(&b, "%d. [%s](%s)", i+1, titleEscaper.Replace(it.Title), it.CanonicalURL)
		if it.Source != "" {
			fmt.Fprintf(&b, "　—　*%s*", it.Source)
		}
		if it.Timestamp != nil {
			fmt.Fprintf(&b, "　`%s`", it.Timestamp.Format("2006-01-02 15:04"))
		}
		b.WriteByte('\n')
		if len(it.Keywords) > 0 {
			fmt.Fprintf(&b, "> 命中关键词：%s\n", strings.Join(it.Keywords, ","))
		}
		if it.Snippet != "" {
			fmt.Fprintf(&b, "> %s\n", runewidth.Truncate(it.Snippet, snippetMaxWidth, "…"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Split 按字符（rune）边界把长文本切成不超过 chunkSize 的片段。
// 纯切片、不重排，所有片段按序拼接能精确还原原文；分片标题的 （i/n） 后缀
// 由投递层负责，与正文无关。chunkSize <= 0 时不切。
func Split(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}
	rs := []rune(text)
	if len(rs) <= chunkSize {
		return []string{text}
	}
	chunks := make([]string, 0, (len(rs)+chunkSize-1)/chunkSize)
	for start := 0; start < len(rs); start += chunkSize {
		end := start + chunkSize
		if end > len(rs) {
			end = len(rs)
		}
		chunks = append(chunks, string(rs[start:end]))
	}
	return chunks
}
