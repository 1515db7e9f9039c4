package scanner

import (
	"time"

	"hrdigest/internal/config"
	"hrdigest/internal/digest"
)

// Build 把配置里的来源声明实例化成扫描器；未知类型在 config 层已经拦掉
func Build(srcs []config.Source) []digest.SourceScanner {
	out := make([]digest.SourceScanner, 0, len(srcs))
	for _, s := range srcs {
		switch s.Type {
		case "search":
			out = append(out, &SearchScanner{
				SourceName: s.Name,
				SearchURL:  s.URL,
				Keyword:    s.Keyword,
				Pages:      s.Pages,
				Delay:      time.Duration(s.DelaySec) * time.Second,
				MaxItems:   s.MaxItems,
			})
		case "rss":
			out = append(out, &RSSScanner{
				SourceName: s.Name,
				FeedURL:    s.URL,
				Keywords:   s.Keywords,
				MaxItems:   s.MaxItems,
			})
		default: // column
			cs := &ColumnScanner{
				SourceName: s.Name,
				ListURL:    s.URL,
				Pages:      s.Pages,
				PageStyle:  s.PageStyle,
				Selectors:  s.Selectors,
				Keywords:   s.Keywords,
				AllowHost:  s.AllowHost,
				MaxItems:   s.MaxItems,
			}
			if s.EnrichDetail {
				cs.Enricher = NewDetailEnricher()
			}
			out = append(out, cs)
		}
	}
	return out
}
