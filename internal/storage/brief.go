package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LJTian/MacroBrief/internal/brief"
	"github.com/LJTian/MacroBrief/internal/processor"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	listCacheTTL   = 5 * time.Minute
	archiveTopN    = 10
	statusMaxRunes = 500
)

// Brief 一份已生成的晨报，按东八区日期归档，同一天重复生成时覆盖
type Brief struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	BriefDate   string            `gorm:"size:10;uniqueIndex" json:"briefDate"` // YYYY-MM-DD
	WindowStart time.Time         `json:"windowStart"`
	WindowEnd   time.Time         `gorm:"index" json:"windowEnd"`
	ItemsUsed   int               `json:"itemsUsed"`
	RiskMode    string            `gorm:"size:16;index" json:"riskMode"`
	Signal      string            `gorm:"size:8" json:"signal"`
	Status      string            `gorm:"size:512" json:"status"`
	Report      string            `gorm:"type:text" json:"report"`
	TopItems    datatypes.JSON    `gorm:"type:jsonb" json:"topItems"`
	ExtraData   datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type archivedItem struct {
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Source     string    `json:"source"`
	Category   string    `json:"category"`
	Importance int       `json:"importance"`
	Published  time.Time `json:"published"`
}

// NewBrief 由一次采集结果和渲染后的晨报构造归档记录
func NewBrief(res processor.Result, report string, sum brief.Summary) (*Brief, error) {
	top := append([]processor.NewsItem(nil), res.Items...)
	processor.SortByImportance(top)
	if len(top) > archiveTopN {
		top = top[:archiveTopN]
	}

	archived := make([]archivedItem, 0, len(top))
	categories := map[string]any{}
	for _, it := range top {
		archived = append(archived, archivedItem{
			Title:      toValidUTF8(it.Title),
			Link:       it.Link,
			Source:     it.Source,
			Category:   string(it.Category),
			Importance: it.Importance,
			Published:  it.Published,
		})
		n, _ := categories[string(it.Category)].(int)
		categories[string(it.Category)] = n + 1
	}
	topJSON, err := json.Marshal(archived)
	if err != nil {
		return nil, fmt.Errorf("marshal top items: %w", err)
	}

	return &Brief{
		BriefDate:   res.WindowEnd.In(locEast8).Format("2006-01-02"),
		WindowStart: res.WindowStart,
		WindowEnd:   res.WindowEnd,
		ItemsUsed:   len(res.Items),
		RiskMode:    string(brief.AggregateImpact(top).RiskMode),
		Signal:      string(sum.Signal),
		Status:      truncateRunesDB(toValidUTF8(sum.Status), statusMaxRunes),
		Report:      toValidUTF8(report),
		TopItems:    datatypes.JSON(topJSON),
		ExtraData: datatypes.JSONMap{
			"keyLines":   sum.KeyLines,
			"categories": categories,
		},
	}, nil
}

// 列表类缓存键，归档写入后需要失效
const (
	listCacheKeyFmt  = "brief:list:%d"
	datesCacheKeyFmt = "brief:dates:%d"
)

var listCachePatterns = []string{"brief:list:*", "brief:dates:*"}

// SaveBrief 以日期为幂等键写入，已存在时更新内容；成功后清掉列表缓存
func (s *Store) SaveBrief(b *Brief) error {
	if !s.ArchiveEnabled() {
		return ErrArchiveDisabled
	}
	if err := s.upsertBrief(b); err != nil {
		return err
	}
	s.DeleteByPattern(context.Background(), listCachePatterns...)
	return nil
}

func (s *Store) upsertBrief(b *Brief) error {
	existing := &Brief{}
	err := s.DB.Where("brief_date = ?", b.BriefDate).First(existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(b).Error
	}
	if err != nil {
		return err
	}
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	return s.DB.Model(existing).Updates(map[string]any{
		"window_start": b.WindowStart,
		"window_end":   b.WindowEnd,
		"items_used":   b.ItemsUsed,
		"risk_mode":    b.RiskMode,
		"signal":       b.Signal,
		"status":       b.Status,
		"report":       b.Report,
		"top_items":    b.TopItems,
		"extra_data":   b.ExtraData,
	}).Error
}

// GetBrief 按日期读取一份晨报，不存在时返回 false
func (s *Store) GetBrief(date string) (*Brief, bool) {
	if !s.ArchiveEnabled() {
		return nil, false
	}
	var b Brief
	silent := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)})
	if err := silent.Where("brief_date = ?", date).First(&b).Error; err != nil {
		return nil, false
	}
	return &b, true
}

// ListBriefs 按生成时间倒序返回晨报（不含正文），并使用 Redis 做简单缓存
func (s *Store) ListBriefs(limit int) ([]Brief, error) {
	if !s.ArchiveEnabled() {
		return nil, ErrArchiveDisabled
	}
	if limit <= 0 || limit > 365 {
		limit = 30
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf(listCacheKeyFmt, limit)
	var cached []Brief
	if s.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var list []Brief
	err := s.DB.Model(&Brief{}).
		Omit("report").
		Order("window_end DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	if len(list) > 0 {
		s.SetJSON(ctx, cacheKey, list, listCacheTTL)
	}
	return list, nil
}

// ListBriefDates 返回有晨报的日期列表（倒序），结果缓存 5 分钟
func (s *Store) ListBriefDates(limit int) ([]string, error) {
	if !s.ArchiveEnabled() {
		return nil, ErrArchiveDisabled
	}
	if limit <= 0 || limit > 365 {
		limit = 31
	}
	ctx := context.Background()
	cacheKey := fmt.Sprintf(datesCacheKeyFmt, limit)
	var cached []string
	if s.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var dates []string
	err := s.DB.Model(&Brief{}).
		Order("brief_date DESC").
		Limit(limit).
		Pluck("brief_date", &dates).Error
	if err != nil {
		return nil, err
	}
	if len(dates) > 0 {
		s.SetJSON(ctx, cacheKey, dates, listCacheTTL)
	}
	return dates, nil
}
