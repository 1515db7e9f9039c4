package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"hrdigest/internal/api"
	"hrdigest/internal/config"
	"hrdigest/internal/digest"
	"hrdigest/internal/dingtalk"
	"hrdigest/internal/scanner"
	"hrdigest/internal/scheduler"
	"hrdigest/internal/sink"
	"hrdigest/internal/store"
)

// 常驻入口：cron 定时跑日报，同时开一个预览 API。
// 最近一次报告缓存在 Redis（未配置则只推送不缓存）。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	st := store.New(cfg.RedisAddr)

	driver := &digest.Driver{
		Sources:       scanner.Build(cfg.Sources),
		Mode:          cfg.Mode,
		Cap:           cfg.Limit,
		AllowDateless: cfg.AllowDateless,
		Now:           func() time.Time { return time.Now().In(cfg.Loc) },
	}

	notifier := dingtalk.New(cfg.DingTalkWebhook, cfg.DingTalkSecret)
	notifier.Keyword = cfg.DingTalkKeyword
	notifier.ChunkSize = cfg.ChunkSize
	notifier.DryRun = cfg.DryRun

	runAndDeliver := func() (*digest.Report, error) {
		rep, err := driver.Run()
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		st.SaveLatest(ctx, rep)
		cancel()

		if cfg.OutputDir != "" {
			snap := &sink.Snapshot{Dir: cfg.OutputDir}
			if _, _, err := snap.Write(rep); err != nil {
				log.Printf("write snapshot failed: %v", err)
			}
		}

		title := "早安资讯｜" + rep.Window.Label
		if err := notifier.Send(title, rep.Markdown); err != nil {
			log.Printf("push failed: %v", err)
		}
		return rep, nil
	}

	sched, err := scheduler.New(cfg.CronSpec, func() {
		if _, err := runAndDeliver(); err != nil {
			log.Printf("scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	r := gin.Default()
	apiServer := api.NewServer(st, runAndDeliver)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
