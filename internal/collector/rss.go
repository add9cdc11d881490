package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	rssDefaultUserAgent = "daily-macro-risk-brief/1.0"
	rssDefaultTimeout   = 20 * time.Second
	rssMaxBodyBytes     = 4 << 20 // 4MB，防止超大源
)

// RSSFetcher 抓取单个 RSS/Atom 源。不做重试，超时与非 2xx 均视为失败。
type RSSFetcher struct {
	FeedName  string
	URL       string
	UserAgent string
	Timeout   time.Duration
}

func NewRSSFetcher(name, url, userAgent string, timeout time.Duration) *RSSFetcher {
	return &RSSFetcher{
		FeedName:  name,
		URL:       url,
		UserAgent: userAgent,
		Timeout:   timeout,
	}
}

func (f *RSSFetcher) Name() string {
	return f.FeedName
}

func (f *RSSFetcher) Fetch() ([]RawEntry, error) {
	body, err := f.download()
	if err != nil {
		return nil, err
	}
	entries := ParseFeed(body)
	if len(entries) == 0 {
		log.Printf("rss %s: no entries parsed (%d bytes)", f.FeedName, len(body))
	}
	return entries, nil
}

func (f *RSSFetcher) download() ([]byte, error) {
	ua := f.UserAgent
	if ua == "" {
		ua = rssDefaultUserAgent
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = rssDefaultTimeout
	}

	c := colly.NewCollector(
		colly.UserAgent(ua),
		colly.MaxBodySize(rssMaxBodyBytes),
	)
	c.SetRequestTimeout(timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(f.URL); err != nil {
		return nil, fmt.Errorf("rss %s: fetch %s: %w", f.FeedName, f.URL, err)
	}
	return body, nil
}
