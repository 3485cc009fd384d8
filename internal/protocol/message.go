// message.go

package protocol

import (
	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/sim"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// MessageType 消息类型
type MessageType string

const (
	// 客户端 -> 服务器
	MsgStart  MessageType = "start"
	MsgInput  MessageType = "input"
	MsgPause  MessageType = "pause"
	MsgResume MessageType = "resume"
	MsgReset  MessageType = "reset"

	// 服务器 -> 客户端
	MsgFrame    MessageType = "frame"
	MsgGameOver MessageType = "game_over"
	MsgError    MessageType = "error"
)

// ClientMessage 客户端消息
type ClientMessage struct {
	Type  MessageType `json:"type"`
	Input *sim.Intent `json:"input,omitempty"`
}

// ServerMessage 服务器消息
type ServerMessage struct {
	Type     MessageType   `json:"type"`
	Frame    *FrameInfo    `json:"frame,omitempty"`
	GameOver *GameOverInfo `json:"game_over,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ActorInfo 渲染端需要的实体信息
type ActorInfo struct {
	ID        string            `json:"id"`
	Type      models.EntityType `json:"type"`
	Kind      string            `json:"kind,omitempty"`
	Position  geom.Vec3         `json:"position"`
	Rotation  geom.Vec3         `json:"rotation"`
	Health    int               `json:"health,omitempty"`
	MaxHealth int               `json:"max_health,omitempty"`
	Phase     int               `json:"phase,omitempty"`
	Charging  bool              `json:"charging,omitempty"`
}

// SnapshotInfo 帧快照
type SnapshotInfo struct {
	Player       ActorInfo   `json:"player"`
	Enemies      []ActorInfo `json:"enemies"`
	Boss         *ActorInfo  `json:"boss,omitempty"`
	Collectibles []ActorInfo `json:"collectibles"`
	PlayerShots  []geom.Vec3 `json:"player_shots"`
	EnemyShots   []geom.Vec3 `json:"enemy_shots"`
	Particles    int         `json:"particles"`
}

// FrameInfo 每帧推送的状态
type FrameInfo struct {
	Frame      int64           `json:"frame"`
	Elapsed    float64         `json:"elapsed"`
	Outcome    models.Outcome  `json:"outcome"`
	Events     []models.Event  `json:"events,omitempty"`
	Score      int             `json:"score"`
	Combo      int             `json:"combo"`
	Multiplier float64         `json:"multiplier"`
	Health     int             `json:"health"`
	MaxHealth  int             `json:"max_health"`
	Effects    []ledger.Effect `json:"effects,omitempty"`
	Snapshot   *SnapshotInfo   `json:"snapshot,omitempty"`
}

// GameOverInfo 一局结束的结算
type GameOverInfo struct {
	RunID         string  `json:"run_id"`
	FinalScore    int     `json:"final_score"`
	PreviousScore int     `json:"previous_score"`
	MaxCombo      int     `json:"max_combo"`
	Kills         int     `json:"kills"`
	Duration      float64 `json:"duration"`
	Rank          int64   `json:"rank"` // 0 表示未上榜
}
