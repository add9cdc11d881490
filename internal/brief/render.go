package brief

import (
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/MacroBrief/internal/collector"
	"github.com/LJTian/MacroBrief/internal/processor"
)

const (
	topN           = 10
	triggerCount   = 5
	eventTitleMax  = 30
	implicationMax = 18
	triggerMax     = 18
	impactRowMax   = 40

	// Placeholder 某个段落没有可用内容时输出的固定文案
	Placeholder = "过去24小时无可验证的新信息。"
)

const (
	HeadingConclusion = "## 今日结论（先看这个）"
	labelRiskMode     = "风险情绪"
	labelDriver       = "今日主导变量"
	labelPosture      = "今日操作姿态"
)

// Render 生成固定结构的晨报，相同输入输出完全一致
func Render(items []processor.NewsItem, start, end time.Time) string {
	sorted := append([]processor.NewsItem(nil), items...)
	processor.SortByImportance(sorted)
	top := sorted
	if len(top) > topN {
		top = top[:topN]
	}
	impact := AggregateImpact(top)

	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add("# 固定输出模板（必须严格一致）", "")
	add(HeadingConclusion)
	add(fmt.Sprintf("- %s：%s（由最新事件结构主导）", labelRiskMode, impact.RiskMode))
	add(fmt.Sprintf("- %s：%s（短期定价更依赖后续表态）", labelDriver, mainDriver(top)))
	add(fmt.Sprintf("- %s：%s（以确认信号优先，避免追涨杀跌）", labelPosture, postureOf(impact.RiskMode)))
	add("")

	add("## 过去24小时：世界大事摘要（按重要性 6–10 条）")
	if len(top) == 0 {
		add(Placeholder)
	} else {
		// 头部最多 10 条，全部展示
		for _, it := range top {
			add(fmt.Sprintf("- [%s] %s（%s）— %s",
				it.Category,
				TruncateRunes(it.Title, eventTitleMax),
				TruncateRunes(ImplicationLine(it.Category), implicationMax),
				it.Link))
		}
	}
	add("")

	add("## 市场影响解读（机制与传导）")
	addRows := func(heading string, rows []string, limit int) {
		add(heading)
		if len(rows) == 0 {
			add(Placeholder)
		} else {
			if len(rows) > limit {
				rows = rows[:limit]
			}
			for _, r := range rows {
				add("- " + TruncateRunes(r, impactRowMax))
			}
		}
	}
	addRows("### 1) 美股/标普500（方向性，不给点位）", impact.Equities, 5)
	add("")
	addRows("### 2) 利率/美元（方向性，不给点位）", impact.Rates, 4)
	add("")
	addRows("### 3) 能源/大宗（可选）", impact.Energy, 3)
	add("")
	addRows("### 4) 加密资产/加密ETF（风险偏好框架）", impact.Crypto, 4)
	add("")

	add("## 三种情景与应对（务必克制）")
	add("- 基准情景（Base）：数据与表态交错，市场维持区间波动。以分散配置与仓位纪律为主，等待更清晰方向。")
	add("- 上行情景（Upside）：若通胀回落且冲突降温，风险偏好有望修复。可逐步提高风险资产暴露，但分批验证。")
	add("- 下行情景（Downside）：若冲突升级或通胀再抬头，风险资产回撤概率上升。优先控制回撤与流动性风险。")
	add("")

	add("## 今日投资建议（仅信息与教育用途）")
	add("- 建议1：（面向：美股/标普500）维持核心敞口为主，只有在宏观与盈利预期同向改善时再增加暴露。")
	add("- 建议2：（面向：加密ETF）把加密ETF视为高波动卫星仓位，仅在风险偏好与资金流确认后再逐步参与。")
	add("- 建议3：（风险管理）控制单日新增仓位、分散资产来源，并预设可接受回撤范围。")
	add("")

	add("## 需要重点盯的“下一步触发点”（3–5条）")
	if len(top) == 0 {
		add(Placeholder)
	} else {
		triggers := top
		if len(triggers) > triggerCount {
			triggers = triggers[:triggerCount]
		}
		for _, it := range triggers {
			add(fmt.Sprintf("- %s + 是否延续/反转 + 等待官方后续声明或数据确认 — %s",
				TruncateRunes(it.Title, triggerMax), it.Link))
		}
	}
	add("")
	add(fmt.Sprintf("Data window: %s to %s", isoTime(start), isoTime(end)))

	return strings.Join(lines, "\n")
}

// ImplicationLine 每个分类对应的一句话影响
func ImplicationLine(c processor.Category) string {
	switch c {
	case processor.CategoryCentralBanks:
		return "影响流动性与估值锚，对成长/防御风格切换敏感。"
	case processor.CategoryEconomy:
		return "改变增长与通胀预期，影响风险偏好与利率方向。"
	case processor.CategoryMilitary:
		return "提升避险需求，压制高波动资产风险偏好。"
	case processor.CategoryEnergy:
		return "通过成本与通胀预期传导至股债与美元。"
	case processor.CategoryChinaUS:
		return "影响供应链与监管预期，改变跨市场风险溢价。"
	case processor.CategoryTech:
		return "影响科技盈利预期与产业链估值分化。"
	default:
		return "事件不确定性变化，影响市场风险偏好定价。"
	}
}

func mainDriver(top []processor.NewsItem) string {
	if len(top) == 0 {
		return "地缘安全与央行沟通"
	}
	switch top[0].Category {
	case processor.CategoryCentralBanks, processor.CategoryEconomy:
		return "央行口径与宏观数据"
	case processor.CategoryMilitary, processor.CategoryGeopolitics:
		return "冲突与制裁进展"
	case processor.CategoryEnergy:
		return "能源供应与运输扰动"
	default:
		return "地缘安全与央行沟通"
	}
}

func postureOf(mode RiskMode) string {
	switch mode {
	case RiskOn:
		return "偏进攻"
	case RiskOff:
		return "偏防守"
	default:
		return "观望"
	}
}

// TruncateRunes 先清洗文本，超过 limit 个字符时保留前 limit-1 个并以省略号结尾
func TruncateRunes(s string, limit int) string {
	s = collector.CleanText(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	return string(rs[:limit-1]) + "…"
}

func isoTime(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}
