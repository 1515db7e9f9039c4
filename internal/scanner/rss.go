package scanner

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"hrdigest/internal/digest"
)

// RSSScanner 订阅源扫描（Google News 按关键词的 RSS 这类）。
// RSS 自带结构化发布时间，直接格式化成日期文本交给统一的解析链，
// 保持与 HTML 来源完全一致的归一化路径。
type RSSScanner struct {
	SourceName string
	FeedURL    string
	Keywords   []string
	MaxItems   int

	parser *gofeed.Parser
}

func (s *RSSScanner) Name() string { return s.SourceName }

func (s *RSSScanner) Scan() ([]digest.RawCandidate, error) {
	if s.parser == nil {
		s.parser = gofeed.NewParser()
		s.parser.UserAgent = userAgent
	}

	feed, err := s.parser.ParseURL(s.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse feed: %w", s.SourceName, err)
	}

	var out []digest.RawCandidate
	for _, it := range feed.Items {
		if s.MaxItems > 0 && len(out) >= s.MaxItems {
			break
		}
		title := squash(it.Title)
		if title == "" || it.Link == "" {
			continue
		}
		snippet := truncRunes(squash(it.Description), 160)
		hit, matched := matchKeywords(s.Keywords, title, snippet)
		if !hit {
			continue
		}

		rawDate := it.Published
		if it.PublishedParsed != nil {
			rawDate = it.PublishedParsed.Format("2006-01-02 15:04")
		}
		out = append(out, digest.RawCandidate{
			Title:       title,
			URL:         it.Link,
			Source:      s.SourceName,
			RawDateText: rawDate,
			RawSnippet:  snippet,
			Keywords:    matched,
		})
	}
	return out, nil
}
