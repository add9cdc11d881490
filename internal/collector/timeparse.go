package collector

import (
	"net/mail"
	"strings"
	"time"
)

// 不带时区的 RFC 2822 形式，按参考时间的时区解释
var rfc2822NaiveLayouts = []string{
	"Mon, _2 Jan 2006 15:04:05",
	"_2 Jan 2006 15:04:05",
	"Mon, _2 Jan 2006 15:04",
	"_2 Jan 2006 15:04",
}

// 带时区的 ISO 8601 形式
var isoZonedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
}

// 不带时区的 ISO 8601 形式，按参考时间的时区解释
var isoNaiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTime 将源中的各种时间字符串解析为 ref 所在时区的时间。
// 依次尝试 RFC 2822（pubDate）、ISO 8601、仅日期；
// 仅日期的形式只有在与 ref 同一天时才接受，取当天零点，避免旧条目混入时间窗口。
func ParseTime(raw string, ref time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	loc := ref.Location()

	if t, err := mail.ParseDate(raw); err == nil {
		// -0000 表示时区未知，按本地墙钟时间处理
		if strings.HasSuffix(raw, "-0000") {
			return wallTimeIn(t, loc), true
		}
		return t.In(loc), true
	}
	for _, layout := range rfc2822NaiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}

	iso := strings.ReplaceAll(raw, "Z", "+00:00")
	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range isoNaiveLayouts {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return t, true
		}
	}

	if len(raw) < 10 {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", raw[:10], loc)
	if err != nil {
		return time.Time{}, false
	}
	ry, rm, rd := ref.In(loc).Date()
	if y, m, d := day.Date(); y != ry || m != rm || d != rd {
		return time.Time{}, false
	}
	return day, true
}

func wallTimeIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
