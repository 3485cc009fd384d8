// pilot.go

package sim

import (
	"math"

	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 飞船操控参数
const (
	ForwardSpeed    = 30.0
	LateralSpeed    = 20.0
	VerticalSpeed   = 15.0
	MaxX            = 15.0
	MinY            = 1.0
	MaxY            = 10.0
	MaxRoll         = 0.5
	MaxPitch        = 0.2
	TiltRate        = 5.0
	ShootCooldown   = 0.2
	MultiShotOffset = 0.5
)

// StartPosition 开局位置
var StartPosition = geom.V(0, 1, 0)

// Intent 一帧的操作意图
type Intent struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Shoot bool `json:"shoot"`
}

// Pilot 玩家飞船
type Pilot struct {
	Position geom.Vec3
	Rotation geom.Vec3 // X 俯仰，Z 翻滚
	Health   *ledger.Health
	Effects  *ledger.EffectLedger

	cooldown float64
}

func newPilot(maxHealth int) *Pilot {
	return &Pilot{
		Position: StartPosition,
		Health:   ledger.NewHealth(maxHealth),
		Effects:  ledger.NewEffectLedger(),
	}
}

// Move 按意图移动飞船，始终沿 -Z 前进
func (p *Pilot) Move(dt float64, in Intent) {
	p.Position.Z -= ForwardSpeed * p.Effects.SpeedMultiplier() * dt

	switch {
	case in.Left:
		p.Position.X -= LateralSpeed * dt
		p.Rotation.Z = math.Min(p.Rotation.Z+TiltRate*dt, MaxRoll)
	case in.Right:
		p.Position.X += LateralSpeed * dt
		p.Rotation.Z = math.Max(p.Rotation.Z-TiltRate*dt, -MaxRoll)
	default:
		p.Rotation.Z *= math.Max(0, 1-TiltRate*dt)
	}

	switch {
	case in.Up:
		p.Position.Y += VerticalSpeed * dt
		p.Rotation.X = math.Min(p.Rotation.X+TiltRate*dt, MaxPitch)
	case in.Down:
		p.Position.Y -= VerticalSpeed * dt
		p.Rotation.X = math.Max(p.Rotation.X-TiltRate*dt, -MaxPitch)
	default:
		p.Rotation.X *= math.Max(0, 1-TiltRate*dt)
	}

	p.Position.X = math.Max(-MaxX, math.Min(MaxX, p.Position.X))
	p.Position.Y = math.Max(MinY, math.Min(MaxY, p.Position.Y))
}

// muzzles 本次开火的炮口位置，冷却未结束时返回 nil
func (p *Pilot) muzzles(dt float64, in Intent) []geom.Vec3 {
	if p.cooldown > 0 {
		p.cooldown -= dt
	}
	if !in.Shoot || p.cooldown > 0 {
		return nil
	}

	p.cooldown = ShootCooldown * p.Effects.ShootCooldownMultiplier()
	if !p.Effects.HasMultiShot() {
		return []geom.Vec3{p.Position}
	}
	return []geom.Vec3{
		p.Position.Add(geom.V(-MultiShotOffset, 0, 0)),
		p.Position,
		p.Position.Add(geom.V(MultiShotOffset, 0, 0)),
	}
}

func (p *Pilot) reset() {
	p.Position = StartPosition
	p.Rotation = geom.Vec3{}
	p.Health.Reset()
	p.Effects.Clear()
	p.cooldown = 0
}
