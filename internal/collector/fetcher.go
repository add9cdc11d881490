package collector

// RawEntry 单个源解析后的条目，时间仍为原始字符串，由上层按时间窗口解析
type RawEntry struct {
	Title     string
	Summary   string
	Link      string
	Published string
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch() ([]RawEntry, error)
}
