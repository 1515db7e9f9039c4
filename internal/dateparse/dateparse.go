package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// 各站点日期写法五花八门：2025-09-17、2025/9/17、2025.9.17、2025年9月17日、
// 标题尾部的 (09-17 10:30)、甚至只有“3小时前”。这里把所有写法归一到固定优先级的
// 几个模式族，按族顺序取第一个命中。

// 匹配前先把中文与其它分隔符统一成 "-"，正则只需处理一种写法
var sepNormalizer = strings.NewReplacer(
	"年", "-", "月", "-", "日", "-",
	"/", "-", ".", "-",
	"　", " ",
)

// 模式族，按优先级排列：完整日期时间 > 完整日期 > 月日+时间 > 裸月日
var (
	reDateTime  = regexp.MustCompile(`(20\d{2})\D(\d{1,2})\D(\d{1,2})[\s\-]{1,3}(\d{1,2}):(\d{1,2})`)
	reDateOnly  = regexp.MustCompile(`(20\d{2})\D(\d{1,2})\D(\d{1,2})`)
	reMDTime    = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{1,2})`)
	reMDOnly    = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})\b`)
	reRelative  = regexp.MustCompile(`刚刚|分钟前|小时前|今天|今日`)
	reWhitespce = regexp.MustCompile(`\s+`)
)

// 只有日期没有时间时统一取中午，这样落在任意同日窗口内
const noonHour = 12

// Parse 从任意文本中提取一个最可能的发布时间，无法识别返回 nil。
// ref 提供“现在”的语义：相对时间短语直接返回 ref，缺少年份的月日用 ref 推断年份
// （推出的日期晚于 ref 则回退一年，处理跨年初的 12-31）。
// 数字越界（13月、32日）不会 panic，按未识别处理。
func Parse(text string, ref time.Time) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	loc := ref.Location()
	norm := reWhitespce.ReplaceAllString(sepNormalizer.Replace(text), " ")

	if m := reDateTime.FindStringSubmatch(norm); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), loc)
	}
	if m := reDateOnly.FindStringSubmatch(norm); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), noonHour, 0, loc)
	}
	if m := reMDTime.FindStringSubmatch(norm); m != nil {
		return inferYear(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), ref)
	}
	if m := reMDOnly.FindStringSubmatch(norm); m != nil {
		return inferYear(atoi(m[1]), atoi(m[2]), noonHour, 0, ref)
	}
	if reRelative.MatchString(text) {
		t := ref
		return &t
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// buildDate 构造时间并校验分量没有被 time.Date 归一化掉（month=13 会翻到次年）
func buildDate(y, mo, d, hh, mm int, loc *time.Location) *time.Time {
	if mo < 1 || mo > 12 || d < 1 || d > 31 || hh > 23 || mm > 59 {
		return nil
	}
	t := time.Date(y, time.Month(mo), d, hh, mm, 0, 0, loc)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return nil
	}
	return &t
}

// inferYear 缺年份的月日：先按 ref 当年，晚于 ref 则回退一年
func inferYear(mo, d, hh, mm int, ref time.Time) *time.Time {
	t := buildDate(ref.Year(), mo, d, hh, mm, ref.Location())
	if t == nil {
		return nil
	}
	if t.After(ref) {
		return buildDate(ref.Year()-1, mo, d, hh, mm, ref.Location())
	}
	return t
}
