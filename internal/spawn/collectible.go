package spawn

import (
	"math"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 收集物动画参数
const (
	CollectibleSpin = 2.0
	PowerUpBob      = 0.2
)

// Collectible 星星或强化道具
type Collectible struct {
	models.Actor
	PowerUp  models.PowerUpKind `json:"powerup,omitempty"`
	Rotation geom.Vec3          `json:"rotation"`
}

func newStar(pos geom.Vec3) *Collectible {
	return &Collectible{Actor: models.NewActor(models.EntityStar, pos, models.StarExtent)}
}

func newPowerUp(kind models.PowerUpKind, pos geom.Vec3) *Collectible {
	return &Collectible{
		Actor:   models.NewActor(models.EntityPowerUp, pos, models.PowerUpExtent),
		PowerUp: kind,
	}
}

// IsStar 是否为星星
func (c *Collectible) IsStar() bool {
	return c.Type == models.EntityStar
}

// animate 星星自转，道具自转并上下浮动
func (c *Collectible) animate(dt float64) {
	if c.IsStar() {
		c.Rotation.Y += dt * CollectibleSpin
		c.Rotation.Z += dt
		return
	}
	c.Rotation.Y += dt * CollectibleSpin
	c.Rotation.X += dt * CollectibleSpin * 0.5
	c.Position.Y += math.Sin(c.Rotation.Y*2) * PowerUpBob * dt
}
