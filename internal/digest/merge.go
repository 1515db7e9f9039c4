package digest

import (
	"sort"
	"time"

	"hrdigest/internal/window"
)

// 没有时间戳的条目排序/比较时用零点哨兵，保证任何真实时间都比它新
var epochZero = time.Unix(0, 0)

func tsOrZero(ts *time.Time) time.Time {
	if ts == nil {
		return epochZero
	}
	return *ts
}

// Merge 按 CanonicalURL 合并条目，保持输入顺序。
// 首次出现的条目打底；同一 URL 再次出现时关键词取并集，且当新条目的时间戳
// 严格更新时，标题/摘要/来源/时间戳整体换成新条目的（“最近一次看到的为准”）。
// 跨来源的重复同样适用。满足幂等：Merge(Merge(xs)) == Merge(xs)。
func Merge(items []Item) []Item {
	byURL := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))

	for _, it := range items {
		idx, ok := byURL[it.CanonicalURL]
		if !ok {
			byURL[it.CanonicalURL] = len(out)
			it.Keywords = uniqueSorted(it.Keywords)
			out = append(out, it)
			continue
		}

		kept := &out[idx]
		kept.Keywords = uniqueSorted(append(kept.Keywords, it.Keywords...))
		if tsOrZero(it.Timestamp).After(tsOrZero(kept.Timestamp)) {
			kept.Title = it.Title
			kept.Snippet = it.Snippet
			kept.Source = it.Source
			kept.Timestamp = it.Timestamp
		}
	}
	return out
}

// Filter 保留时间戳落在窗口内的条目；allowDateless 显式打开时无日期条目也保留
// （个别来源几乎不给日期，默认关闭）。
func Filter(items []Item, w window.Window, allowDateless bool) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if w.Contains(it.Timestamp, allowDateless) {
			out = append(out, it)
		}
	}
	return out
}

func uniqueSorted(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
