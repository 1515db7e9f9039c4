package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"hrdigest/internal/window"
)

// 配置来自环境变量（.env 可选）+ 可选的来源清单 YAML。
// 窗口模式与回填日期在这里就做校验：配错了要在任何抓取开始前退出。

type Config struct {
	AppPort   string
	RedisAddr string
	CronSpec  string

	Loc  *time.Location
	Mode window.Mode

	Limit         int
	AllowDateless bool

	DingTalkWebhook string
	DingTalkSecret  string
	DingTalkKeyword string
	ChunkSize       int
	DryRun          bool

	OutputDir string
	Sources   []Source
}

// Source 一个来源的声明，type 决定用哪种扫描器
type Source struct {
	Name string `yaml:"name"`
	// column / search / rss
	Type      string   `yaml:"type"`
	URL       string   `yaml:"url"`
	Pages     int      `yaml:"pages"`
	PageStyle string   `yaml:"pageStyle"`
	Selectors []string `yaml:"selectors"`
	Keywords  []string `yaml:"keywords"`
	Keyword   string   `yaml:"keyword"`
	AllowHost string   `yaml:"allowHost"`
	DelaySec  int      `yaml:"delaySec"`
	MaxItems  int      `yaml:"maxItems"`
	// 列表页没日期时进详情页补时
	EnrichDetail bool `yaml:"enrichDetail"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// 未提供 SOURCES_FILE 时的内置来源：人社部人社新闻 + 公共招聘网资讯
var defaultSources = []Source{
	{
		Name:      "人社部·人社新闻",
		Type:      "column",
		URL:       "https://www.mohrss.gov.cn/SYrlzyhshbzb/dongtaixinwen/buneiyaowen/rsxw/",
		Pages:     2,
		PageStyle: "path",
		AllowHost: "mohrss.gov.cn",
	},
	{
		Name:      "公共招聘网·资讯",
		Type:      "column",
		URL:       "http://job.mohrss.gov.cn/zxss/index.jhtml",
		Pages:     2,
		PageStyle: "query",
		AllowHost: "mohrss.gov.cn",
	},
}

func Load() (*Config, error) {
	// .env 不存在不算错
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ_NAME", "Asia/Shanghai"))
	if err != nil {
		loc = time.FixedZone("CST", 8*3600)
	}

	cfg := &Config{
		AppPort:   getEnv("APP_PORT", "9000"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		// 工作日早上 8 点推送
		CronSpec: getEnv("CRON_SPEC", "0 8 * * *"),
		Loc:      loc,

		Limit:         getEnvInt("LIMIT", 50),
		AllowDateless: getEnvBool("ALLOW_DATELESS", false),

		DingTalkWebhook: firstEnv("DINGTALK_WEBHOOK", "DINGTALK_BASE", "WEBHOOK"),
		DingTalkSecret:  firstEnv("DINGTALK_SECRET", "SECRET"),
		DingTalkKeyword: os.Getenv("DINGTALK_KEYWORD"),
		ChunkSize:       getEnvInt("CHUNK_SIZE", 3500),
		DryRun:          getEnvBool("DRY_RUN", false),

		OutputDir: os.Getenv("OUTPUT_DIR"),
	}

	cfg.Mode, err = parseMode()
	if err != nil {
		return nil, err
	}
	// 模式/日期配置错误要立刻暴露，不能等到抓完才发现
	if _, err := window.For(cfg.Mode, time.Now().In(loc)); err != nil {
		return nil, err
	}

	cfg.Sources = defaultSources
	if path := os.Getenv("SOURCES_FILE"); path != "" {
		srcs, err := loadSources(path)
		if err != nil {
			return nil, err
		}
		cfg.Sources = srcs
	}

	log.Printf("config loaded: mode=%v limit=%d sources=%d cron=%s",
		cfg.Mode.Kind, cfg.Limit, len(cfg.Sources), cfg.CronSpec)
	return cfg, nil
}

// parseMode 环境变量组合出窗口模式：
//
//	WINDOW_MODE=auto     周一近 N 天合辑、其余昨日（默认，DAYS_FOR_MONDAY 默认 3）
//	WINDOW_MODE=business 上一个工作日整天
//	WINDOW_MODE=rolling  近 WINDOW_HOURS 小时（默认 24）
//	WINDOW_MODE=day      DATE 指定的那天（yesterday 或 2006-01-02）
func parseMode() (window.Mode, error) {
	mode := strings.ToLower(getEnv("WINDOW_MODE", "auto"))
	switch mode {
	case "auto":
		return window.Mode{Kind: window.WeekdayAwareSpan, DaysOnMonday: getEnvInt("DAYS_FOR_MONDAY", 3)}, nil
	case "business":
		return window.Mode{Kind: window.PreviousBusinessDay}, nil
	case "rolling":
		return window.Mode{Kind: window.RollingHours, Hours: getEnvInt("WINDOW_HOURS", 24)}, nil
	case "day":
		return window.Mode{Kind: window.CalendarDay, Date: getEnv("DATE", "yesterday")}, nil
	default:
		return window.Mode{}, fmt.Errorf("config: unknown WINDOW_MODE %q", mode)
	}
}

func loadSources(path string) ([]Source, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read sources file: %w", err)
	}
	var sf sourcesFile
	if err := yaml.Unmarshal(bs, &sf); err != nil {
		return nil, fmt.Errorf("config: parse sources file: %w", err)
	}
	if len(sf.Sources) == 0 {
		return nil, fmt.Errorf("config: sources file %s declares no sources", path)
	}
	for i, s := range sf.Sources {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("config: source #%d missing name or url", i+1)
		}
		switch s.Type {
		case "column", "search", "rss":
		default:
			return nil, fmt.Errorf("config: source %q has unknown type %q", s.Name, s.Type)
		}
	}
	return sf.Sources, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
