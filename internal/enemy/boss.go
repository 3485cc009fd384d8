// boss.go

package enemy

import (
	"math"
	"math/rand"

	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 首领参数
const (
	BossChargeDelay    = 3.0  // 进入第二阶段后多久开始冲锋
	BossChargeDuration = 1.0  // 单次冲锋时长
	BossChargeSpeed    = 10.0 // 冲锋速度
	BossEaseRate       = 2.0  // 平时向玩家靠拢的速度
	BossMuzzle         = 2.0  // 射击点沿 Z 的偏移
	BossFanSpread      = 2.0  // 扇形射击的横向间距
	BossBurstCount     = 5
	BossBurstRadius    = 5.0
)

// BossShootIntervals 各阶段射击间隔
var BossShootIntervals = [3]float64{1.5, 1.0, 0.8}

// PhaseFor 由生命值比例推导阶段
func PhaseFor(ratio float64) int {
	switch {
	case ratio < 0.5:
		return 2
	case ratio < 0.75:
		return 1
	default:
		return 0
	}
}

// BossState 首领状态机
type BossState struct {
	Phase         int        `json:"phase"`
	PhaseTimer    float64    `json:"phase_timer"`      // 当前阶段(或冲锋)已持续的时间
	ShootTimer    float64    `json:"shoot_timer"`
	ShootInterval float64    `json:"shoot_interval"`
	Charge        *geom.Vec3 `json:"charge,omitempty"` // 冲锋锁定的方向
}

// Charging 是否正在冲锋
func (b *BossState) Charging() bool {
	return b.Charge != nil
}

// NewBoss 创建首领，首领需要火力，gun 为空时只移动不射击
func NewBoss(pos geom.Vec3, rng *rand.Rand, gun Gun) *Enemy {
	cfg := models.ConfigFor(models.EnemyBoss)
	return &Enemy{
		Actor:  models.NewActor(models.EntityBoss, pos, models.BossExtent),
		Kind:   models.EnemyBoss,
		Config: cfg,
		health: ledger.NewHealth(cfg.Health),
		gun:    gun,
		rng:    rng,
		base:   pos,
		boss: &BossState{
			ShootInterval: BossShootIntervals[0],
		},
	}
}

func (e *Enemy) updateBoss(dt float64, player geom.Vec3) Report {
	b := e.boss
	b.PhaseTimer += dt
	b.ShootTimer += dt

	report := Report{Phase: b.Phase}
	if phase := PhaseFor(e.health.Ratio()); phase != b.Phase {
		b.Phase = phase
		b.ShootInterval = BossShootIntervals[phase]
		b.PhaseTimer = 0
		b.Charge = nil
		report.Phase = phase
		report.PhaseChanged = true
	}

	if b.Phase == 2 && (b.Charging() || b.PhaseTimer > BossChargeDelay) {
		e.charge(dt, player)
	} else {
		dir := geom.Direction(e.Position, player)
		e.Position.X += dir.X * dt * BossEaseRate
		e.Position.Y += dir.Y * dt * BossEaseRate
	}

	if b.ShootTimer >= b.ShootInterval {
		report.Shots = e.shootPattern(player)
		b.ShootTimer = 0
	}
	return report
}

// charge 锁定方向冲锋，持续 BossChargeDuration 后解除锁定
func (e *Enemy) charge(dt float64, player geom.Vec3) {
	b := e.boss
	if b.Charge == nil {
		dir := geom.Direction(e.Position, player)
		b.Charge = &dir
		b.PhaseTimer = 0
	}

	e.Position = e.Position.AddScaled(*b.Charge, dt*BossChargeSpeed)

	if b.PhaseTimer > BossChargeDuration {
		b.Charge = nil
		b.PhaseTimer = 0
	}
}

func (e *Enemy) shootPattern(player geom.Vec3) int {
	if e.gun == nil {
		return 0
	}

	from := e.Position.Add(geom.V(0, 0, BossMuzzle))
	var targets []geom.Vec3
	switch e.boss.Phase {
	case 0:
		targets = []geom.Vec3{player}
	case 1:
		for i := 0; i < 3; i++ {
			targets = append(targets, player.Add(geom.V(float64(i-1)*BossFanSpread, 0, 0)))
		}
	default:
		for i := 0; i < BossBurstCount; i++ {
			angle := float64(i) / BossBurstCount * math.Pi * 2
			targets = append(targets, player.Add(geom.V(math.Cos(angle)*BossBurstRadius, math.Sin(angle)*BossBurstRadius, 0)))
		}
	}

	shots := 0
	for _, target := range targets {
		if e.gun.Shoot(from, target) {
			shots++
		}
	}
	return shots
}
