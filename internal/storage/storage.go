package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrArchiveDisabled 未配置 POSTGRES_DSN 时归档相关操作返回该错误
var ErrArchiveDisabled = errors.New("storage: brief archive disabled")

// Store 晨报归档（Postgres）与读侧缓存（Redis），两者均可不配置
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStore dsn 为空时不启用归档，redisAddr 为空时不启用缓存
func NewStore(dsn, redisAddr string) (*Store, error) {
	s := &Store{}

	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&Brief{}); err != nil {
			return nil, err
		}
		s.DB = db
	}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// ArchiveEnabled 是否配置了数据库
func (s *Store) ArchiveEnabled() bool {
	return s != nil && s.DB != nil
}

// GetJSON 从 Redis 读取并反序列化，未命中或未启用缓存时返回 false
func (s *Store) GetJSON(ctx context.Context, key string, dst any) bool {
	if s == nil || s.Redis == nil {
		return false
	}
	bs, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(bs, dst) == nil
}

// SetJSON 序列化后写入 Redis，失败只记日志
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if s == nil || s.Redis == nil {
		return
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, bs, ttl).Err(); err != nil {
		log.Printf("warn: redis set %s: %v", key, err)
	}
}

// DeleteByPattern 删除匹配的缓存键，失败只记日志
func (s *Store) DeleteByPattern(ctx context.Context, patterns ...string) {
	if s == nil || s.Redis == nil {
		return
	}
	for _, pattern := range patterns {
		var keys []string
		iter := s.Redis.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			log.Printf("warn: redis scan %s: %v", pattern, err)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
			log.Printf("warn: redis del %s: %v", pattern, err)
		}
	}
}

// Close 释放连接
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// 东八区，用于晨报日期
var locEast8 *time.Location

func init() {
	locEast8, _ = time.LoadLocation("Asia/Shanghai")
	if locEast8 == nil {
		locEast8 = time.FixedZone("CST", 8*3600)
	}
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误（部分源可能含混编字符）
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// truncateRunesDB 按 rune 数截断字符串，确保不会超过数据库字段长度
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
