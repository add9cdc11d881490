package processor

import "strings"

// Category 新闻主题分类
type Category string

const (
	CategoryCentralBanks Category = "Central Banks"
	CategoryEconomy      Category = "Economy"
	CategoryMarkets      Category = "Markets"
	CategoryMilitary     Category = "Military & Security"
	CategoryGeopolitics  Category = "Geopolitics"
	CategoryEnergy       Category = "Energy & Commodities"
	CategoryChinaUS      Category = "China-US"
	CategoryTech         Category = "Tech & Supply Chain"
)

// DefaultCategory 没有任何关键词命中时的兜底分类
const DefaultCategory = CategoryGeopolitics

type categoryRule struct {
	Category Category
	Keywords []string
}

// categoryRules 的顺序就是匹配优先级，同时命中多个分类时取靠前的
var categoryRules = []categoryRule{
	{CategoryCentralBanks, []string{"fed", "federal reserve", "ecb", "boj", "pboc", "央行", "利率", "降息", "加息"}},
	{CategoryEconomy, []string{"inflation", "cpi", "pce", "pmi", "gdp", "jobs", "unemployment", "就业", "通胀", "经济"}},
	{CategoryMarkets, []string{"stocks", "equity", "bond", "treasury", "volatility", "市场", "美股", "收益率"}},
	{CategoryMilitary, []string{"military", "strike", "missile", "defense", "war", "军", "冲突", "袭击"}},
	{CategoryGeopolitics, []string{"sanction", "summit", "diplomatic", "geopolitical", "制裁", "外交", "地缘"}},
	{CategoryEnergy, []string{"oil", "gas", "opec", "crude", "lng", "energy", "能源", "原油", "天然气"}},
	{CategoryChinaUS, []string{"china", "u.s.", "us", "beijing", "washington", "中美", "关税", "出口管制"}},
	{CategoryTech, []string{"semiconductor", "chip", "ai", "export control", "supply chain", "芯片", "供应链"}},
}

// hotKeywords 每命中一个（不计重复次数）重要性 +1
var hotKeywords = []string{
	"fed", "ecb", "inflation", "jobs", "sanction", "war", "oil", "missile",
	"tariff", "default", "systemic",
	"银行", "冲突", "制裁", "通胀", "失业", "能源",
}

const (
	baseImportance = 1
	maxImportance  = 5
)

// Categories 按优先级返回全部分类
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules))
	for _, r := range categoryRules {
		out = append(out, r.Category)
	}
	return out
}

// Valid 是否属于固定分类集合
func (c Category) Valid() bool {
	for _, r := range categoryRules {
		if r.Category == c {
			return true
		}
	}
	return false
}

// Classify 按子串匹配关键词（不区分大小写、不做词边界判断），返回第一个命中的分类
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range categoryRules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return DefaultCategory
}

// ScoreImportance 基础分 1，每个命中的热词 +1，封顶 5
func ScoreImportance(text string) int {
	lower := strings.ToLower(text)
	score := baseImportance
	for _, kw := range hotKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	if score > maxImportance {
		score = maxImportance
	}
	return score
}
