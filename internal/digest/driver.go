package digest

import (
	"log"
	"time"

	"github.com/google/uuid"

	"hrdigest/internal/window"
)

// SourceScanner 抽象一个站点/栏目的列表扫描，实现方负责具体的抓取与选择器
type SourceScanner interface {
	Name() string
	Scan() ([]RawCandidate, error)
}

// SourceError 单个来源的失败记录，不会中断整次运行
type SourceError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Report 一次运行的产物，渲染后即丢弃，不做跨次持久化
type Report struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Window      window.Window `json:"window"`
	Items       []Item        `json:"items"`
	Markdown    string        `json:"markdown"`
	// 各来源归一化后的条目数（合并/过滤前）
	PerSource map[string]int `json:"perSource"`
	Errors    []SourceError  `json:"errors,omitempty"`
}

// Driver 串起一次完整的聚合：扫描全部来源 → 归一化 → 合并 → 窗口过滤 → 渲染。
// 先合并后过滤是有意为之：同一 URL 在第二个来源给出了更新（在窗口内）的时间戳时，
// 不能因为首个来源的日期落在窗口外就把这条丢掉。
type Driver struct {
	Sources       []SourceScanner
	Mode          window.Mode
	Cap           int
	AllowDateless bool
	// Now 可注入固定时间，便于测试与 --date 回填
	Now func() time.Time
}

// Run 执行一次聚合。只有窗口配置非法才返回错误（且发生在任何抓取之前）；
// 单个来源失败只记录在 Report.Errors，剩余来源照常进入后续阶段。
// 全部来源失败时仍产出零条目的“暂无更新”报告。
func (d *Driver) Run() (*Report, error) {
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	w, err := window.For(d.Mode, now)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		Window:      w,
		PerSource:   make(map[string]int, len(d.Sources)),
	}

	// 逐个来源串行扫描：合并语义依赖输入顺序，来源顺序即优先顺序
	var all []Item
	for _, src := range d.Sources {
		name := src.Name()
		log.Printf("scan %s...", name)
		raws, err := src.Scan()
		if err != nil {
			log.Printf("scan %s error: %v", name, err)
			rep.Errors = append(rep.Errors, SourceError{Source: name, Message: err.Error()})
			continue
		}
		for _, rc := range raws {
			all = append(all, Normalize(rc, now))
		}
		rep.PerSource[name] = len(raws)
		log.Printf("scan %s done, got %d items", name, len(raws))
	}

	merged := Merge(all)
	rep.Items = Filter(merged, w, d.AllowDateless)
	rep.Markdown = Render(rep.Items, w, d.Cap, now)

	log.Printf("run %s: raw=%d merged=%d kept=%d window=%s",
		rep.RunID, len(all), len(merged), len(rep.Items), w.Label)
	return rep, nil
}
