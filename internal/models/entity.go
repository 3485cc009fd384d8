// entity.go

package models

import (
	"github.com/google/uuid"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// EntityType 实体类型
type EntityType string

const (
	// EntityPlayer 玩家飞船
	EntityPlayer EntityType = "player"
	// EntityEnemy 普通敌人
	EntityEnemy EntityType = "enemy"
	// EntityBoss 首领
	EntityBoss EntityType = "boss"
	// EntityStar 星星收集物
	EntityStar EntityType = "star"
	// EntityPowerUp 强化道具
	EntityPowerUp EntityType = "powerup"
	// EntityProjectile 投射物
	EntityProjectile EntityType = "projectile"
	// EntityParticle 粒子
	EntityParticle EntityType = "particle"
)

// 各类实体的包围盒半尺寸
var (
	PlayerExtent           = geom.V(0.875, 0.35, 0.7)
	StarExtent             = geom.V(0.35, 0.35, 0.35)
	PowerUpExtent          = geom.V(0.56, 0.56, 0.56)
	PlayerProjectileExtent = geom.V(0.07, 0.07, 0.7)
	EnemyProjectileExtent  = geom.V(0.105, 0.105, 0.105)
)

// Actor 模拟中的基础实体
type Actor struct {
	ID       string     `json:"id"`
	Type     EntityType `json:"type"`
	Position geom.Vec3  `json:"position"`
	Extent   geom.Vec3  `json:"extent"` // 包围盒半尺寸
	Active   bool       `json:"active"`
}

// NewActor 创建实体
func NewActor(entityType EntityType, position, extent geom.Vec3) Actor {
	return Actor{
		ID:       uuid.New().String(),
		Type:     entityType,
		Position: position,
		Extent:   extent,
		Active:   true,
	}
}

// Bounds 获取实体包围盒
func (a *Actor) Bounds() geom.AABB {
	return geom.BoxAt(a.Position, a.Extent)
}

// Deactivate 标记实体失效
func (a *Actor) Deactivate() {
	a.Active = false
}

// Outcome 碰撞结果
type Outcome string

const (
	// OutcomeNone 无事发生
	OutcomeNone Outcome = "none"
	// OutcomeScore 拾取得分
	OutcomeScore Outcome = "score"
	// OutcomeGameOver 玩家死亡
	OutcomeGameOver Outcome = "game_over"
)
