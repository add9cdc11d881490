package brief

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"
)

// Signal 晨报灯号
type Signal string

const (
	SignalGreen  Signal = "green"
	SignalYellow Signal = "yellow"
	SignalRed    Signal = "red"
)

const StatusMissing = "缺失"

// Summary 从已生成的晨报中提取的结论摘要
type Summary struct {
	Exists    bool       `json:"exists"`
	Status    string     `json:"status"`
	Signal    Signal     `json:"signal"`
	KeyLines  []string   `json:"keyLines"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

var bulletPrefix = regexp.MustCompile(`^[-*\d+.、]+\s*`)

var conclusionLabels = []string{labelRiskMode, "主导变量", "操作姿态"}

// Summarize 提取“今日结论”中的风险情绪、主导变量、操作姿态三行，并据此给出灯号
func Summarize(raw string) Summary {
	lines := sectionLines(raw, "## 今日结论")
	if len(lines) == 0 {
		lines = nonEmptyLines(raw)
	}
	if len(lines) == 0 {
		return Summary{Status: "空", Signal: SignalRed, KeyLines: []string{}}
	}

	keyLines := conclusionLines(lines)
	status := strings.Join(keyLines, " | ")
	return Summary{
		Exists:   true,
		Status:   status,
		Signal:   SignalFromStatus(status),
		KeyLines: keyLines,
	}
}

// ReadFile 读取晨报文件并生成摘要；文件缺失或为空时返回红灯摘要而不是错误
func ReadFile(path string) (Summary, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return missingSummary("文件缺失，请先生成晨报"), "", nil
		}
		return Summary{}, "", err
	}
	if info.Size() == 0 {
		return missingSummary("文件为空，请先生成晨报"), "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, "", err
	}
	raw := string(data)
	sum := Summarize(raw)
	mtime := info.ModTime()
	sum.UpdatedAt = &mtime
	return sum, raw, nil
}

func missingSummary(msg string) Summary {
	return Summary{
		Status:   StatusMissing,
		Signal:   SignalRed,
		KeyLines: []string{},
		Error:    msg,
	}
}

// SignalFromStatus 偏进攻为绿灯，观望/中性为黄灯，偏防守或 risk-off 为红灯
func SignalFromStatus(status string) Signal {
	switch {
	case strings.Contains(status, "偏进攻"):
		return SignalGreen
	case strings.Contains(status, "观望"), strings.Contains(status, "中性"), strings.Contains(status, "偏平衡"):
		return SignalYellow
	case strings.Contains(status, "偏防守"), strings.Contains(strings.ToLower(status), "risk-off"):
		return SignalRed
	case strings.Contains(status, StatusMissing), strings.Contains(status, "空"):
		return SignalRed
	default:
		return SignalYellow
	}
}

// sectionLines 返回以 heading 开头的二级标题下的非空行，到下一个二级标题为止
func sectionLines(raw, heading string) []string {
	var out []string
	in := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !in {
			in = strings.HasPrefix(line, heading)
			continue
		}
		if strings.HasPrefix(line, "## ") {
			break
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func nonEmptyLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func conclusionLines(lines []string) []string {
	picked := make([]string, 0, len(conclusionLabels))
	for _, label := range conclusionLabels {
		for _, line := range lines {
			if strings.Contains(line, label) {
				picked = append(picked, stripBullet(line))
				break
			}
		}
	}
	if len(picked) == len(conclusionLabels) {
		return picked
	}

	// 没有找到完整的三行时退回前三行
	fallback := make([]string, 0, 3)
	for _, line := range lines {
		if s := stripBullet(line); s != "" {
			fallback = append(fallback, s)
		}
		if len(fallback) == 3 {
			break
		}
	}
	return fallback
}

func stripBullet(line string) string {
	return bulletPrefix.ReplaceAllString(line, "")
}
