package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// 定时触发一次完整的“抓取→渲染→推送”。任务本身由调用方组装，
// 这里只负责 cron 周期。

type Scheduler struct {
	cron *cron.Cron
	job  func()
}

func New(spec string, job func()) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, job: job}
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.run()
}

func (s *Scheduler) run() {
	log.Println("start digest job...")
	s.job()
	log.Println("digest job done")
}
