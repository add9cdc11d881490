package scheduler

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobRunning 上一次生成尚未结束
var ErrJobRunning = errors.New("scheduler: brief job already running")

type Scheduler struct {
	cron *cron.Cron
	job  *Job
	mu   sync.Mutex
}

func New(spec string, job *Job) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron: c,
		job:  job,
	}

	_, err := c.AddFunc(spec, s.runScheduled)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 启动时若还没有晨报文件，延迟生成一份，避免与首个请求争抢资源
	if _, err := os.Stat(s.job.OutputPath); err == nil {
		return
	}
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, s.runScheduled)
}

// Stop 停止调度，返回的 ctx 在正在执行的任务结束后关闭
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口；同一时间只允许一个任务
func (s *Scheduler) RunOnce(ctx context.Context) (*Outcome, error) {
	if !s.mu.TryLock() {
		return nil, ErrJobRunning
	}
	defer s.mu.Unlock()
	return s.job.Run(ctx)
}

func (s *Scheduler) runScheduled() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		log.Printf("brief job error: %v", err)
	}
}
