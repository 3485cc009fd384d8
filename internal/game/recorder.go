// recorder.go

package game

import (
	"context"
	"time"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

// RunStore 对局记录持久化
type RunStore interface {
	Save(ctx context.Context, run *models.RunRecord) error
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.RunRecord, error)
}

// Leaderboard 最高分排行榜
type Leaderboard interface {
	Submit(ctx context.Context, playerID string, score int) error
	Rank(ctx context.Context, playerID string) (int64, error)
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// RunCache 玩家最近一局的缓存
type RunCache interface {
	CacheLastRun(ctx context.Context, run *models.RunRecord) error
	LastRun(ctx context.Context, playerID string) (*models.RunRecord, error)
}

// 存储操作超时
const storeTimeout = 3 * time.Second

// Recorder 在一局结束时写入记录、缓存和排行榜，三者都可以为空
type Recorder struct {
	store RunStore
	board Leaderboard
	cache RunCache
}

// NewRecorder 创建记录器
func NewRecorder(store RunStore, board Leaderboard, cache RunCache) *Recorder {
	return &Recorder{store: store, board: board, cache: cache}
}

// Enabled 是否配置了任意存储
func (r *Recorder) Enabled() bool {
	return r != nil && (r.store != nil || r.board != nil || r.cache != nil)
}

// Record 保存一局记录并返回排名，存储失败只记录日志
func (r *Recorder) Record(ctx context.Context, run *models.RunRecord) int64 {
	if !r.Enabled() {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	log := logger.L().With().Str("run_id", run.ID).Str("player_id", run.PlayerID).Logger()

	if r.store != nil {
		if err := r.store.Save(ctx, run); err != nil {
			log.Error().Err(err).Msg("保存对局记录失败")
		}
	}

	if r.cache != nil {
		if err := r.cache.CacheLastRun(ctx, run); err != nil {
			log.Warn().Err(err).Msg("缓存最近一局失败")
		}
	}

	if r.board == nil {
		return 0
	}
	if err := r.board.Submit(ctx, run.PlayerID, run.Score); err != nil {
		log.Error().Err(err).Msg("提交排行榜失败")
		return 0
	}
	rank, err := r.board.Rank(ctx, run.PlayerID)
	if err != nil {
		log.Warn().Err(err).Msg("获取排名失败")
		return 0
	}

	log.Info().Int("score", run.Score).Int64("rank", rank).Msg("对局已记录")
	return rank
}
