// run.go

package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord 一局游戏的记录
type RunRecord struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"player_id"`
	SessionID      string    `json:"session_id"`
	Score          int       `json:"score"`
	PreviousScore  int       `json:"previous_score"`
	MaxCombo       int       `json:"max_combo"`
	Kills          int       `json:"kills"`
	BossesDefeated int       `json:"bosses_defeated"`
	Duration       float64   `json:"duration"` // 模拟时长(秒)
	Distance       float64   `json:"distance"` // 飞行距离
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}

// NewRunRecord 创建带 ID 的记录
func NewRunRecord(playerID, sessionID string) *RunRecord {
	return &RunRecord{
		ID:        uuid.New().String(),
		PlayerID:  playerID,
		SessionID: sessionID,
	}
}

// RunRepository 对局记录仓库(PostgreSQL)
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository 创建对局记录仓库
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save 保存对局记录
func (r *RunRepository) Save(ctx context.Context, run *RunRecord) error {
	query := `
		INSERT INTO runs (
			id, player_id, session_id, score, previous_score, max_combo,
			kills, bosses_defeated, duration, distance, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.PlayerID, run.SessionID, run.Score, run.PreviousScore, run.MaxCombo,
		run.Kills, run.BossesDefeated, run.Duration, run.Distance, run.StartedAt, run.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("保存对局记录失败: %w", err)
	}
	return nil
}

// ListByPlayer 按时间倒序获取玩家的对局记录
func (r *RunRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, player_id, session_id, score, previous_score, max_combo,
			kills, bosses_defeated, duration, distance, started_at, ended_at
		FROM runs
		WHERE player_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询对局记录失败: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(
			&run.ID, &run.PlayerID, &run.SessionID, &run.Score, &run.PreviousScore, &run.MaxCombo,
			&run.Kills, &run.BossesDefeated, &run.Duration, &run.Distance, &run.StartedAt, &run.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("解析对局记录失败: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// BestScore 玩家历史最高分，没有记录时返回 0
func (r *RunRepository) BestScore(ctx context.Context, playerID string) (int, error) {
	var best sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(score) FROM runs WHERE player_id = $1`, playerID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("查询最高分失败: %w", err)
	}
	return int(best.Int64), nil
}
