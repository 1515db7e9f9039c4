package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"hrdigest/internal/digest"
)

// 最近一次报告的缓存，给预览接口用。只有一个会被覆盖的槽位，
// 不是历史运行的存储——流水线本身每次运行都是无状态的。
// Redis 不可用时整个缓存静默降级，不影响抓取与推送。

const (
	keyLatestMD   = "digest:latest:md"
	keyLatestJSON = "digest:latest:json"

	// 日报节奏，缓存留两天足够
	latestTTL = 48 * time.Hour
)

type Store struct {
	rdb *redis.Client
}

// New addr 为空返回可用但不缓存的 Store
func New(addr string) *Store {
	if addr == "" {
		return &Store{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}
	return &Store{rdb: rdb}
}

// SaveLatest 覆盖写入最近一次报告（markdown 与完整 JSON 各一份）
func (s *Store) SaveLatest(ctx context.Context, rep *digest.Report) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, keyLatestMD, rep.Markdown, latestTTL).Err(); err != nil {
		log.Printf("warn: cache markdown: %v", err)
	}
	bs, err := json.Marshal(rep)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, keyLatestJSON, bs, latestTTL).Err(); err != nil {
		log.Printf("warn: cache report: %v", err)
	}
}

// LatestMarkdown 未命中（或未启用缓存）返回空串
func (s *Store) LatestMarkdown(ctx context.Context) string {
	if s.rdb == nil {
		return ""
	}
	v, err := s.rdb.Get(ctx, keyLatestMD).Result()
	if err != nil {
		return ""
	}
	return v
}

// LatestReport 返回完整报告 JSON，未命中返回 nil
func (s *Store) LatestReport(ctx context.Context) []byte {
	if s.rdb == nil {
		return nil
	}
	bs, err := s.rdb.Get(ctx, keyLatestJSON).Bytes()
	if err != nil {
		return nil
	}
	return bs
}
