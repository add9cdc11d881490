package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Feed 一个 RSS/Atom 源：展示名 + 地址
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds 默认采集的可信源，顺序即处理顺序
var DefaultFeeds = []Feed{
	{Name: "Federal Reserve", URL: "https://www.federalreserve.gov/feeds/press_all.xml"},
	{Name: "ECB", URL: "https://www.ecb.europa.eu/rss/press.html"},
	{Name: "EIA", URL: "https://www.eia.gov/rss/todayinenergy.xml"},
	{Name: "IMF", URL: "https://www.imf.org/en/News/RSS"},
	{Name: "NATO", URL: "https://www.nato.int/rss/index.xml"},
	{Name: "Reuters World", URL: "https://www.reuters.com/world/rss"},
	{Name: "Reuters Business", URL: "https://www.reuters.com/business/rss"},
	{Name: "BBC World", URL: "http://feeds.bbci.co.uk/news/world/rss.xml"},
	{Name: "CNBC World", URL: "https://www.cnbc.com/id/100727362/device/rss/rss.html"},
}

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	CronSpec string

	// 简单访问控制，均为空时不启用
	BasicAuthUser string
	BasicAuthPass string

	// 晨报生成参数
	Hours        int
	OutputPath   string
	MaxPerFeed   int
	FetchTimeout time.Duration
	UserAgent    string
	Feeds        []Feed
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CronSpec:      getEnv("CRON_SPEC", "0 7 * * *"),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
		Hours:         getEnvInt("BRIEF_HOURS", 24),
		OutputPath:    getEnv("BRIEF_OUTPUT", "daily-macro-risk-brief.md"),
		MaxPerFeed:    getEnvInt("BRIEF_MAX_PER_FEED", 20),
		FetchTimeout:  time.Duration(getEnvInt("BRIEF_FETCH_TIMEOUT_SEC", 20)) * time.Second,
		UserAgent:     getEnv("BRIEF_USER_AGENT", "daily-macro-risk-brief/1.0"),
		Feeds:         parseFeeds(getEnv("BRIEF_FEEDS", "")),
	}

	log.Printf("config loaded: port=%s cron=%s hours=%d feeds=%d", cfg.AppPort, cfg.CronSpec, cfg.Hours, len(cfg.Feeds))
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt 非法或非正数时回退默认值
func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// parseFeeds 解析 "name|url;name|url"，为空或全部非法时使用默认源
func parseFeeds(raw string) []Feed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append([]Feed(nil), DefaultFeeds...)
	}

	var feeds []Feed
	for _, part := range strings.Split(raw, ";") {
		name, url, ok := strings.Cut(strings.TrimSpace(part), "|")
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if !ok || url == "" {
			continue
		}
		if name == "" {
			name = url
		}
		feeds = append(feeds, Feed{Name: name, URL: url})
	}
	if len(feeds) == 0 {
		return append([]Feed(nil), DefaultFeeds...)
	}
	return feeds
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
