// event.go

package models

import "github.com/jacl-coder/StarRunner-Server/pkg/geom"

// EventType 帧事件类型
type EventType string

const (
	// EventStarCollected 拾取星星
	EventStarCollected EventType = "star_collected"
	// EventPowerUpCollected 拾取道具
	EventPowerUpCollected EventType = "powerup_collected"
	// EventEnemyHit 敌人被击中但未死亡
	EventEnemyHit EventType = "enemy_hit"
	// EventEnemyKilled 敌人被击杀
	EventEnemyKilled EventType = "enemy_killed"
	// EventEnemyRammed 敌人撞上玩家后被摧毁
	EventEnemyRammed EventType = "enemy_rammed"
	// EventBossSpawned 首领出现
	EventBossSpawned EventType = "boss_spawned"
	// EventBossPhaseChanged 首领阶段变化
	EventBossPhaseChanged EventType = "boss_phase_changed"
	// EventBossHit 首领被击中
	EventBossHit EventType = "boss_hit"
	// EventBossDestroyed 首领被击杀
	EventBossDestroyed EventType = "boss_destroyed"
	// EventBossEscaped 首领被甩在身后
	EventBossEscaped EventType = "boss_escaped"
	// EventPlayerHit 玩家受伤
	EventPlayerHit EventType = "player_hit"
	// EventShieldAbsorbed 护盾抵挡了一次伤害
	EventShieldAbsorbed EventType = "shield_absorbed"
	// EventPlayerDied 玩家死亡
	EventPlayerDied EventType = "player_died"
	// EventScoreAdded 加分
	EventScoreAdded EventType = "score_added"
	// EventComboChanged 连击变化
	EventComboChanged EventType = "combo_changed"
	// EventComboMilestone 连击达到5的倍数
	EventComboMilestone EventType = "combo_milestone"
	// EventEffectAdded 效果生效或延长
	EventEffectAdded EventType = "effect_added"
	// EventEffectExpired 效果结束
	EventEffectExpired EventType = "effect_expired"
	// EventPlayerHealed 玩家回血
	EventPlayerHealed EventType = "player_healed"
)

// Event 一帧内发生的离散事件
type Event struct {
	Type       EventType   `json:"type"`
	ActorID    string      `json:"actor_id,omitempty"`
	Enemy      EnemyKind   `json:"enemy,omitempty"`
	PowerUp    PowerUpKind `json:"powerup,omitempty"`
	Effect     EffectKind  `json:"effect,omitempty"`
	Position   geom.Vec3   `json:"position"`
	Damage     int         `json:"damage,omitempty"`
	Score      int         `json:"score,omitempty"`
	Phase      int         `json:"phase,omitempty"`
	Combo      int         `json:"combo,omitempty"`
	Multiplier float64     `json:"multiplier,omitempty"`
	Health     int         `json:"health,omitempty"`
}
