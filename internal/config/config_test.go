package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	t.Setenv(key, "8080")
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetEnvIntFallsBackOnInvalid(t *testing.T) {
	const key = "TEST_BRIEF_HOURS"

	cases := []struct {
		val  string
		want int
	}{
		{"", 24},
		{"48", 48},
		{" 12 ", 12},
		{"abc", 24},
		{"0", 24},
		{"-3", 24},
	}
	for _, c := range cases {
		t.Setenv(key, c.val)
		if got := getEnvInt(key, 24); got != c.want {
			t.Fatalf("getEnvInt(%q) with %q = %d, want %d", key, c.val, got, c.want)
		}
	}
}

func TestParseFeeds(t *testing.T) {
	feeds := parseFeeds("Fed|https://fed.example/rss.xml; |https://noname.example/a ;broken;ECB|")
	if len(feeds) != 2 {
		t.Fatalf("expected 2 feeds, got %d (%v)", len(feeds), feeds)
	}
	if feeds[0].Name != "Fed" || feeds[0].URL != "https://fed.example/rss.xml" {
		t.Fatalf("unexpected first feed: %+v", feeds[0])
	}
	// 名称为空时使用 URL
	if feeds[1].Name != "https://noname.example/a" {
		t.Fatalf("unexpected fallback name: %+v", feeds[1])
	}

	if got := parseFeeds(""); len(got) != len(DefaultFeeds) {
		t.Fatalf("empty BRIEF_FEEDS should use defaults, got %d", len(got))
	}
	if got := parseFeeds("nonsense"); len(got) != len(DefaultFeeds) {
		t.Fatalf("invalid BRIEF_FEEDS should use defaults, got %d", len(got))
	}
}

func TestLoadReadsAuthAndBriefSettings(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")
	t.Setenv("BRIEF_HOURS", "6")
	t.Setenv("BRIEF_OUTPUT", "out.md")
	t.Setenv("BRIEF_FETCH_TIMEOUT_SEC", "5")

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.Hours != 6 || cfg.OutputPath != "out.md" {
		t.Fatalf("brief settings not loaded: hours=%d output=%q", cfg.Hours, cfg.OutputPath)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.MaxPerFeed != 20 {
		t.Fatalf("MaxPerFeed default = %d, want 20", cfg.MaxPerFeed)
	}
	if cfg.UserAgent != "daily-macro-risk-brief/1.0" {
		t.Fatalf("unexpected UserAgent %q", cfg.UserAgent)
	}
}
