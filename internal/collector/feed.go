package collector

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParseFeed 解析 RSS / Atom 内容；解析失败时返回空结果，不影响其它源。
// 同一个源内按 (小写标题, 链接) 去重，后出现的覆盖先出现的，顺序按首次出现保留。
func ParseFeed(body []byte) []RawEntry {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil || feed == nil {
		return nil
	}

	out := make([]RawEntry, 0, len(feed.Items))
	index := make(map[[2]string]int, len(feed.Items))

	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		title := CleanText(it.Title)
		link := CleanText(it.Link)
		if title == "" || link == "" {
			continue
		}

		// RSS 只取 description；Atom 的 summary 缺失时退回 content
		summary := it.Description
		if feed.FeedType == "atom" && strings.TrimSpace(summary) == "" {
			summary = it.Content
		}

		entry := RawEntry{
			Title:     title,
			Summary:   CleanText(summary),
			Link:      link,
			Published: CleanText(rawPublished(feed.FeedType, it)),
		}

		key := [2]string{strings.ToLower(title), link}
		if i, ok := index[key]; ok {
			out[i] = entry
			continue
		}
		index[key] = len(out)
		out = append(out, entry)
	}
	return out
}

// rawPublished Atom 优先 updated，RSS 优先 pubDate，最后退回 dc:date
func rawPublished(feedType string, it *gofeed.Item) string {
	candidates := []string{it.Published, it.Updated}
	if feedType == "atom" {
		candidates = []string{it.Updated, it.Published}
	}
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Date) > 0 {
		candidates = append(candidates, it.DublinCoreExt.Date[0])
	}
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
