package processor

import (
	"context"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/LJTian/MacroBrief/internal/collector"
	"github.com/LJTian/MacroBrief/internal/config"
)

// feedInterval 相邻两个源之间的最小抓取间隔
const feedInterval = 200 * time.Millisecond

// NewsItem 通过时间窗口、完成分类打分后的新闻，构造后不再修改
type NewsItem struct {
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Link       string    `json:"link"`
	Source     string    `json:"source"`
	Published  time.Time `json:"published"`
	Category   Category  `json:"category"`
	Importance int       `json:"importance"`
}

// Result 一次采集的结果与对应的时间窗口（闭区间）
type Result struct {
	Items       []NewsItem
	WindowStart time.Time
	WindowEnd   time.Time
}

// Processor 串行抓取各个源，过滤时间窗口并完成分类、打分、去重与排序
type Processor struct {
	// Now 返回窗口结束时间，测试中可替换
	Now func() time.Time
	// Limiter 控制抓取节奏，为 nil 时不限速
	Limiter *rate.Limiter
}

func NewProcessor() *Processor {
	return &Processor{
		Now:     config.Now,
		Limiter: rate.NewLimiter(rate.Every(feedInterval), 1),
	}
}

// Collect 依次处理每个源；单个源失败只记日志、视为 0 条。
// perFeedCap <= 0 表示不限制单个源的条数。仅在 ctx 取消时返回错误。
func (p *Processor) Collect(ctx context.Context, fetchers []collector.Fetcher, hours, perFeedCap int) (Result, error) {
	now := p.Now
	if now == nil {
		now = config.Now
	}
	end := now()
	start := end.Add(-time.Duration(hours) * time.Hour)
	res := Result{WindowStart: start, WindowEnd: end}

	var collected []NewsItem
	for _, f := range fetchers {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return res, err
			}
		}

		name := f.Name()
		entries, err := f.Fetch()
		if err != nil {
			log.Printf("fetch %s error: %v", name, err)
			continue
		}
		if perFeedCap > 0 && len(entries) > perFeedCap {
			entries = entries[:perFeedCap]
		}

		kept := 0
		for _, e := range entries {
			published, ok := collector.ParseTime(e.Published, end)
			if !ok {
				continue
			}
			if published.Before(start) || published.After(end) {
				continue
			}
			collected = append(collected, newNewsItem(e, name, published))
			kept++
		}
		log.Printf("%s done, fetched=%d kept=%d items", name, len(entries), kept)
	}

	res.Items = DedupeKeepNewest(collected)
	SortByImportance(res.Items)
	return res, nil
}

func newNewsItem(e collector.RawEntry, feedName string, published time.Time) NewsItem {
	text := e.Title + " " + e.Summary
	return NewsItem{
		Title:      e.Title,
		Summary:    e.Summary,
		Link:       e.Link,
		Source:     sourceOfURL(e.Link, feedName),
		Published:  published,
		Category:   Classify(text),
		Importance: ScoreImportance(text),
	}
}

// sourceOfURL 取链接的主机名，解析失败或为空时使用源名称
func sourceOfURL(raw, fallback string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fallback
	}
	return strings.ToLower(u.Host)
}

// DedupeKeepNewest 按归一化标题去重，保留发布时间更晚的一条，顺序按首次出现保留
func DedupeKeepNewest(items []NewsItem) []NewsItem {
	out := make([]NewsItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		key := TitleKey(it.Title)
		if i, ok := index[key]; ok {
			if it.Published.After(out[i].Published) {
				out[i] = it
			}
			continue
		}
		index[key] = len(out)
		out = append(out, it)
	}
	return out
}

// TitleKey 标题去重键：小写后只保留 ASCII 字母数字与 CJK 统一汉字
func TitleKey(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || isCJK(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// SortByImportance 重要性优先、发布时间其次，均为降序
func SortByImportance(items []NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Importance != items[j].Importance {
			return items[i].Importance > items[j].Importance
		}
		return items[i].Published.After(items[j].Published)
	})
}
