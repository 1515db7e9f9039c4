package window

import (
	"fmt"
	"time"
)

// 推送的时间窗口策略。来自运营习惯：工作日推“昨天”的内容，周一要把周末积压的
// 一并补上（默认回溯到上周五）。也支持滚动小时窗口和指定某一天（回填/调试用）。

type Kind int

const (
	// RollingHours [now-n小时, now]
	RollingHours Kind = iota
	// CalendarDay 指定日历日整天，Date 支持 yesterday 或 2006-01-02
	CalendarDay
	// PreviousBusinessDay 周二~周五取昨天，周一取上周五
	PreviousBusinessDay
	// WeekdayAwareSpan 周一取截止昨天的近 N 天合辑，其余同 PreviousBusinessDay
	WeekdayAwareSpan
)

type Mode struct {
	Kind         Kind
	Hours        int    // RollingHours
	Date         string // CalendarDay
	DaysOnMonday int    // WeekdayAwareSpan
}

// Window 两端闭区间 [Start, End]
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains 判断时间戳是否落在窗口内；ts 为 nil 时由 allowDateless 决定
func (w Window) Contains(ts *time.Time, allowDateless bool) bool {
	if ts == nil {
		return allowDateless
	}
	return !ts.Before(w.Start) && !ts.After(w.End)
}

// For 根据模式计算本次运行的窗口。配置非法（未知模式、坏日期、非正小时数）
// 返回错误，调用方应在任何抓取开始前失败退出。
func For(m Mode, now time.Time) (Window, error) {
	switch m.Kind {
	case RollingHours:
		if m.Hours <= 0 {
			return Window{}, fmt.Errorf("window: rolling hours must be positive, got %d", m.Hours)
		}
		return Window{
			Start: now.Add(-time.Duration(m.Hours) * time.Hour),
			End:   now,
			Label: fmt.Sprintf("近%d小时", m.Hours),
		}, nil

	case CalendarDay:
		day, label, err := resolveDay(m.Date, now)
		if err != nil {
			return Window{}, err
		}
		return dayWindow(day, label), nil

	case PreviousBusinessDay:
		target := now.AddDate(0, 0, -1)
		label := "昨日专辑"
		if now.Weekday() == time.Monday {
			target = now.AddDate(0, 0, -3)
			label = "上周五专辑"
		}
		return dayWindow(target, label), nil

	case WeekdayAwareSpan:
		days := m.DaysOnMonday
		if days <= 0 {
			return Window{}, fmt.Errorf("window: days on Monday must be positive, got %d", days)
		}
		if now.Weekday() != time.Monday {
			return For(Mode{Kind: PreviousBusinessDay}, now)
		}
		end := endOfDay(now.AddDate(0, 0, -1))
		start := startOfDay(end.AddDate(0, 0, -(days - 1)))
		return Window{Start: start, End: end, Label: fmt.Sprintf("近%d天合辑", days)}, nil

	default:
		return Window{}, fmt.Errorf("window: unknown mode %d", m.Kind)
	}
}

func resolveDay(date string, now time.Time) (time.Time, string, error) {
	if date == "yesterday" || date == "" {
		return now.AddDate(0, 0, -1), "昨日专辑", nil
	}
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return time.Time{}, "", fmt.Errorf("window: bad date %q: %w", date, err)
	}
	return d, date + " 专题", nil
}

func dayWindow(day time.Time, label string) Window {
	return Window{Start: startOfDay(day), End: endOfDay(day), Label: label}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
