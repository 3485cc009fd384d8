package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 排行榜Redis键名
const (
	LeaderboardBestScoreKey = "leaderboard:best_score"

	// 玩家最近一局记录键前缀
	LastRunPrefix = "run:last:"

	// 最近一局缓存时间
	LastRunCacheTTL = 24 * time.Hour
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"` // 历史最高分
	Rank     int64  `json:"rank"`  // 排名，从1开始
}

// RunLeaderboard 最高分排行榜(Redis 有序集合)
type RunLeaderboard struct {
	client *redis.Client
}

// NewRunLeaderboard 创建排行榜
func NewRunLeaderboard(client *redis.Client) *RunLeaderboard {
	return &RunLeaderboard{client: client}
}

// Submit 提交分数，只保留玩家的最高分
func (rl *RunLeaderboard) Submit(ctx context.Context, playerID string, score int) error {
	err := rl.client.ZAddArgs(ctx, LeaderboardBestScoreKey, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(score), Member: playerID}},
	}).Err()
	if err != nil {
		return fmt.Errorf("更新排行榜失败: %w", err)
	}
	return nil
}

// Top 获取排行榜前 limit 名
func (rl *RunLeaderboard) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	// 按分数降序
	members, err := rl.client.ZRevRangeWithScores(ctx, LeaderboardBestScoreKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取排行榜失败: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		playerID, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: playerID,
			Score:    int(member.Score),
			Rank:     int64(i + 1),
		})
	}
	return entries, nil
}

// Rank 获取玩家排名，未上榜返回 0
func (rl *RunLeaderboard) Rank(ctx context.Context, playerID string) (int64, error) {
	rank, err := rl.client.ZRevRank(ctx, LeaderboardBestScoreKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil // 玩家不在排行榜中
		}
		return 0, fmt.Errorf("获取排名失败: %w", err)
	}
	return rank + 1, nil // Redis排名从0开始，转换为从1开始
}

// CacheLastRun 缓存玩家最近一局
func (rl *RunLeaderboard) CacheLastRun(ctx context.Context, run *RunRecord) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return rl.client.Set(ctx, LastRunPrefix+run.PlayerID, data, LastRunCacheTTL).Err()
}

// LastRun 读取玩家最近一局，没有缓存时返回 nil
func (rl *RunLeaderboard) LastRun(ctx context.Context, playerID string) (*RunRecord, error) {
	data, err := rl.client.Get(ctx, LastRunPrefix+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取最近一局失败: %w", err)
	}

	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
