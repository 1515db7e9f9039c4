package main

import (
	"fmt"
	"log"
	"time"

	"hrdigest/internal/config"
	"hrdigest/internal/digest"
	"hrdigest/internal/dingtalk"
	"hrdigest/internal/scanner"
	"hrdigest/internal/sink"
)

// 单次执行入口：抓取 → 渲染 → 打印 → （可选）快照落盘 → 钉钉推送。
// 适合 crontab / CI 里直接跑。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	driver := &digest.Driver{
		Sources:       scanner.Build(cfg.Sources),
		Mode:          cfg.Mode,
		Cap:           cfg.Limit,
		AllowDateless: cfg.AllowDateless,
		Now:           func() time.Time { return time.Now().In(cfg.Loc) },
	}

	rep, err := driver.Run()
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	fmt.Println("\n--- Markdown Preview ---")
	fmt.Println(rep.Markdown)

	if cfg.OutputDir != "" {
		snap := &sink.Snapshot{Dir: cfg.OutputDir}
		csvPath, jsonPath, err := snap.Write(rep)
		if err != nil {
			log.Printf("write snapshot failed: %v", err)
		} else {
			log.Printf("snapshot saved: %s %s", csvPath, jsonPath)
		}
	}

	notifier := dingtalk.New(cfg.DingTalkWebhook, cfg.DingTalkSecret)
	notifier.Keyword = cfg.DingTalkKeyword
	notifier.ChunkSize = cfg.ChunkSize
	notifier.DryRun = cfg.DryRun

	title := "早安资讯｜" + rep.Window.Label
	if err := notifier.Send(title, rep.Markdown); err != nil {
		log.Fatalf("push failed: %v", err)
	}
	log.Printf("done: kept %d items", len(rep.Items))
}
