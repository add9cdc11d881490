package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/LJTian/MacroBrief/internal/brief"
	"github.com/LJTian/MacroBrief/internal/collector"
	"github.com/LJTian/MacroBrief/internal/config"
	"github.com/LJTian/MacroBrief/internal/processor"
	"github.com/LJTian/MacroBrief/internal/storage"
)

// Job 一次完整的晨报生成：采集 → 渲染 → 写文件 → 归档（可选）
type Job struct {
	Fetchers   []collector.Fetcher
	Processor  *processor.Processor
	Store      *storage.Store
	Hours      int
	MaxPerFeed int
	OutputPath string
}

// Outcome 单次生成的结果，供命令行输出摘要
type Outcome struct {
	Path        string
	ItemsUsed   int
	WindowStart time.Time
	WindowEnd   time.Time
	Summary     brief.Summary
}

// NewJob 按配置为每个源创建 RSSFetcher
func NewJob(cfg *config.Config, store *storage.Store) *Job {
	fetchers := make([]collector.Fetcher, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		fetchers = append(fetchers, collector.NewRSSFetcher(f.Name, f.URL, cfg.UserAgent, cfg.FetchTimeout))
	}
	return &Job{
		Fetchers:   fetchers,
		Processor:  processor.NewProcessor(),
		Store:      store,
		Hours:      cfg.Hours,
		MaxPerFeed: cfg.MaxPerFeed,
		OutputPath: cfg.OutputPath,
	}
}

// Run 写文件失败返回错误；归档失败只记日志，文件是主要产物
func (j *Job) Run(ctx context.Context) (*Outcome, error) {
	log.Println("start brief job...")

	res, err := j.Processor.Collect(ctx, j.Fetchers, j.Hours, j.MaxPerFeed)
	if err != nil {
		return nil, err
	}

	report := brief.Render(res.Items, res.WindowStart, res.WindowEnd)
	if err := brief.WriteFileAtomic(j.OutputPath, report); err != nil {
		return nil, err
	}
	sum := brief.Summarize(report)

	if j.Store.ArchiveEnabled() {
		if err := j.archive(res, report, sum); err != nil {
			log.Printf("warn: archive brief failed: %v", err)
		}
	}

	log.Printf("brief job done, items=%d signal=%s", len(res.Items), sum.Signal)
	return &Outcome{
		Path:        j.OutputPath,
		ItemsUsed:   len(res.Items),
		WindowStart: res.WindowStart,
		WindowEnd:   res.WindowEnd,
		Summary:     sum,
	}, nil
}

func (j *Job) archive(res processor.Result, report string, sum brief.Summary) error {
	b, err := storage.NewBrief(res, report, sum)
	if err != nil {
		return err
	}
	if err := j.Store.SaveBrief(b); err != nil && !errors.Is(err, storage.ErrArchiveDisabled) {
		return err
	}
	return nil
}
