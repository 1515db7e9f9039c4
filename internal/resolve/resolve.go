package resolve

import (
	"net/http"
	"strings"
	"time"

	"hrdigest/internal/dateparse"
)

// 详情页的发布时间可能出现在 time 元素、meta 标签、标题行、正文开头或 URL 里，
// 不同站点放的位置不一样。候选文本按固定优先级收集（见 scanner.DateCandidates），
// 这里对拼接后的整段文本做一次扫描：任何一个片段里有合法日期都能命中，
// 且多个候选冲突时的取舍由模式族优先级 + 首次出现位置决定，是固定可测的行为。
// 注意不能改成逐片段早退——那会改变多候选冲突时选中的日期。

// 片段间的分隔符不含数字和短横线，保证不会拼出新的日期
const candidateSep = " ｜ "

// Resolve 把一组候选文本归并成一个权威时间戳。
// 整段扫描失败时退回 HTTP Last-Modified（RFC 1123 等标准格式），再失败返回 nil。
func Resolve(candidates []string, lastModified string, ref time.Time) *time.Time {
	joined := strings.Join(candidates, candidateSep)
	if ts := dateparse.Parse(joined, ref); ts != nil {
		return ts
	}
	if lastModified != "" {
		if t, err := http.ParseTime(lastModified); err == nil {
			t = t.In(ref.Location())
			return &t
		}
	}
	return nil
}
