package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/LJTian/MacroBrief/internal/config"
	"github.com/LJTian/MacroBrief/internal/scheduler"
)

// 一个仅生成一次晨报的命令行入口：采集、渲染并写入文件后退出
func main() {
	cfg := config.Load()

	flag.IntVar(&cfg.Hours, "hours", cfg.Hours, "Freshness window in hours")
	flag.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output markdown path")
	flag.IntVar(&cfg.MaxPerFeed, "max-per-feed", cfg.MaxPerFeed, "Max raw entries taken from each feed")
	flag.Parse()

	if cfg.Hours <= 0 {
		log.Fatalf("--hours must be positive, got %d", cfg.Hours)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 单次命令不启用归档
	out, err := scheduler.NewJob(cfg, nil).Run(ctx)
	if err != nil {
		log.Fatalf("generate brief failed: %v", err)
	}

	fmt.Printf("Generated: %s\n", out.Path)
	fmt.Printf("Items used: %d\n", out.ItemsUsed)
	fmt.Printf("Window: %s -> %s\n", out.WindowStart.Format(time.RFC3339), out.WindowEnd.Format(time.RFC3339))
}
