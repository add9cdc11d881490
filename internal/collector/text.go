package collector

import (
	"html"
	"regexp"
	"strings"
)

// 宽松的标签匹配，不做 HTML 结构校验
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// 多重转义（如 &amp;lt;）需要多轮才能稳定
const maxCleanPasses = 4

// CleanText 解码 HTML 实体、去掉标签、合并空白并去掉首尾空白。
// 反复清洗直到结果稳定，保证 CleanText(CleanText(s)) == CleanText(s)。
func CleanText(raw string) string {
	out := cleanOnce(raw)
	for i := 0; i < maxCleanPasses; i++ {
		next := cleanOnce(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func cleanOnce(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, "")
	// strings.Fields 按 unicode 空白切分，&nbsp; 解码出的 U+00A0 同样会被合并
	return strings.Join(strings.Fields(s), " ")
}
