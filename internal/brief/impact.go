package brief

import "github.com/LJTian/MacroBrief/internal/processor"

// RiskMode 市场风险情绪
type RiskMode string

const (
	RiskOff   RiskMode = "Risk-off"
	RiskMixed RiskMode = "混合"
	RiskOn    RiskMode = "Risk-on"
)

// Impact 基于头部新闻的市场影响解读，文案为固定模板
type Impact struct {
	RiskMode RiskMode
	Equities []string
	Rates    []string
	Energy   []string
	Crypto   []string
}

var riskOffCategories = map[processor.Category]bool{
	processor.CategoryMilitary:    true,
	processor.CategoryGeopolitics: true,
	processor.CategoryEnergy:      true,
}

var macroCategories = map[processor.Category]bool{
	processor.CategoryCentralBanks: true,
	processor.CategoryEconomy:      true,
}

var energyTriggerCategories = map[processor.Category]bool{
	processor.CategoryEnergy:   true,
	processor.CategoryMilitary: true,
}

const equitiesMacroLead = "宏观与央行信号主导时，市场围绕增长/通胀定价切换。"

// AggregateImpact 统计避险类与宏观类新闻数量决定风险情绪，并给出各市场的固定解读
func AggregateImpact(items []processor.NewsItem) Impact {
	var riskOff, macro int
	energy := false
	for _, it := range items {
		if riskOffCategories[it.Category] {
			riskOff++
		}
		if macroCategories[it.Category] {
			macro++
		}
		if energyTriggerCategories[it.Category] {
			energy = true
		}
	}

	equities := []string{
		"若地缘与制裁升温，防御板块相对占优，指数波动可能抬升。",
		"若央行口径偏鹰，估值扩张受限；偏鸽则缓解贴现压力。",
		"关键数据若偏弱，市场更关注盈利下修与增长担忧。",
	}
	if macro > riskOff {
		equities[0] = equitiesMacroLead
	}

	out := Impact{
		RiskMode: riskModeOf(riskOff, macro),
		Equities: equities,
		Rates: []string{
			"通胀与就业超预期时，长端利率上行压力更大概率出现。",
			"避险情绪走强时，美元与高流动性资产更易获得相对支撑。",
			"央行前瞻指引变化通常先影响短端，再传导至曲线预期。",
		},
		Crypto: []string{
			"风险偏好改善时，加密资产通常与高beta资产共振更明显。",
			"若美元走强且实际利率抬升，加密资产承压概率上升。",
			"ETF资金流向与监管表态是短期情绪与波动的重要锚。",
		},
	}
	if energy {
		out.Energy = []string{
			"供应中断预期上升时，能源价格与运价波动通常放大。",
			"能源价格抬升会加大输入性通胀与利润率挤压风险。",
		}
	}
	return out
}

func riskModeOf(riskOff, macro int) RiskMode {
	switch {
	case riskOff > macro:
		return RiskOff
	case macro > riskOff:
		return RiskOn
	default:
		return RiskMixed
	}
}
