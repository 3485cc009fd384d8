// enemy.go

package enemy

import (
	"math"
	"math/rand"

	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// Gun 敌方火力，通常由敌方投射物发射器实现
type Gun interface {
	Shoot(from, target geom.Vec3) bool
}

// 行为参数
const (
	FastAngularRate    = 3.0
	FastAmplitude      = 3.0
	FastRoll           = 0.3
	SwarmerAngularRate = 5.0
	ChaseSpeed         = 8.0
	ShooterMinInterval = 2.0
	ShooterJitter      = 1.0
	ShooterMuzzle      = 1.0 // 射击点沿 Z 的偏移
)

// Enemy 敌人，按 Kind 分派行为
type Enemy struct {
	models.Actor
	Kind     models.EnemyKind   `json:"kind"`
	Config   models.EnemyConfig `json:"-"`
	Rotation geom.Vec3          `json:"rotation"` // X 俯仰，Z 翻滚

	health *ledger.Health
	gun    Gun
	rng    *rand.Rand

	base          geom.Vec3 // 蛇形/游走的中心点
	phase         float64
	shootTimer    float64
	shootInterval float64

	boss *BossState
}

// New 按种类创建敌人，未知种类退回基础敌人，缺少火力的射手也退回基础敌人
func New(kind models.EnemyKind, pos geom.Vec3, rng *rand.Rand, gun Gun) *Enemy {
	kind = models.ParseEnemyKind(string(kind))
	if kind == models.EnemyBoss {
		return NewBoss(pos, rng, gun)
	}
	if kind == models.EnemyShooter && gun == nil {
		kind = models.EnemyBasic
	}

	cfg := models.ConfigFor(kind)
	e := &Enemy{
		Actor:  models.NewActor(models.EntityEnemy, pos, cfg.Extent()),
		Kind:   kind,
		Config: cfg,
		health: ledger.NewHealth(cfg.Health),
		gun:    gun,
		rng:    rng,
		base:   pos,
	}

	switch kind {
	case models.EnemyFast, models.EnemySwarmer:
		e.phase = rng.Float64() * math.Pi * 2
	case models.EnemyShooter:
		e.shootInterval = e.nextShootInterval()
	}
	return e
}

// Health 当前生命值
func (e *Enemy) Health() int {
	return e.health.Current()
}

// MaxHealth 最大生命值
func (e *Enemy) MaxHealth() int {
	return e.health.Max()
}

// HealthRatio 生命值比例
func (e *Enemy) HealthRatio() float64 {
	return e.health.Ratio()
}

// IsBoss 是否为首领
func (e *Enemy) IsBoss() bool {
	return e.boss != nil
}

// Boss 首领状态，普通敌人返回 nil
func (e *Enemy) Boss() *BossState {
	return e.boss
}

// TakeDamage 扣血，返回本次是否导致死亡；已失效的敌人不再受伤
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.Active {
		return false
	}
	if e.health.TakeDamage(amount) {
		e.Deactivate()
		return true
	}
	return false
}

// Destroy 直接摧毁，用于撞击和越界移除
func (e *Enemy) Destroy() {
	e.Deactivate()
}

// Report 一次行为更新的结果
type Report struct {
	Shots        int  // 本帧发射的子弹数
	PhaseChanged bool // 首领阶段变化
	Phase        int
}

// Update 推进一帧行为，player 为玩家当前位置
func (e *Enemy) Update(dt float64, player geom.Vec3) Report {
	if !e.Active {
		return Report{}
	}

	switch e.Kind {
	case models.EnemyFast:
		e.updateFast(dt)
	case models.EnemySwarmer:
		e.updateSwarmer(dt)
	case models.EnemyChaser:
		e.updateChaser(dt, player)
	case models.EnemyShooter:
		return Report{Shots: e.updateShooter(dt, player)}
	case models.EnemyBoss:
		return e.updateBoss(dt, player)
	}
	// 基础和重甲敌人没有横向行为，只靠玩家前进拉近距离
	return Report{}
}

func (e *Enemy) updateFast(dt float64) {
	e.phase += dt * FastAngularRate
	s := math.Sin(e.phase)
	e.Position.X = e.base.X + s*FastAmplitude
	e.Rotation.Z = s * FastRoll
}

func (e *Enemy) updateSwarmer(dt float64) {
	e.phase += dt * SwarmerAngularRate
	p := e.phase
	e.Position.X = e.base.X + math.Sin(p)*2 + math.Cos(p*1.3)*1.5
	e.Position.Y = e.base.Y + math.Cos(p*0.7)*1.5 + math.Sin(p*1.1)
	e.Rotation.Z = math.Sin(p) * 0.4
	e.Rotation.X = math.Cos(p*0.8) * 0.2
}

func (e *Enemy) updateChaser(dt float64, player geom.Vec3) {
	dir := geom.Direction(e.Position, player)
	step := ChaseSpeed * dt
	e.Position.X += dir.X * step
	e.Position.Y += dir.Y * step
	e.Rotation.Z = math.Atan2(dir.Y, dir.X) - math.Pi/2
}

func (e *Enemy) updateShooter(dt float64, player geom.Vec3) int {
	e.shootTimer += dt
	if e.shootTimer < e.shootInterval {
		return 0
	}

	e.shootTimer = 0
	e.shootInterval = e.nextShootInterval()
	if e.gun.Shoot(e.Position.Add(geom.V(0, 0, ShooterMuzzle)), player) {
		return 1
	}
	return 0
}

func (e *Enemy) nextShootInterval() float64 {
	return ShooterMinInterval + e.rng.Float64()*ShooterJitter
}
