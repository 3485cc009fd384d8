// scheduler.go

package spawn

import (
	"math/rand"

	"github.com/jacl-coder/StarRunner-Server/internal/enemy"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// BossStatus 首领槽位状态
type BossStatus int

const (
	// BossNone 没有首领
	BossNone BossStatus = iota
	// BossActive 首领在场
	BossActive
)

func (s BossStatus) String() string {
	if s == BossActive {
		return "active"
	}
	return "none"
}

// bossSlot 首领状态机，场上至多一个首领
type bossSlot struct {
	status     BossStatus
	boss       *enemy.Enemy
	nextScore  int
	reschedule bool // 首领已离场，下一帧按当时分数安排下一个阈值
}

// Scheduler 生成调度器，独占敌人和收集物列表
type Scheduler struct {
	cfg Config
	rng *rand.Rand
	gun enemy.Gun

	enemies  []*enemy.Enemy
	stars    []*Collectible
	powerUps []*Collectible

	enemyTimer   float64
	powerUpTimer float64
	boss         bossSlot
	shotsFired   int
}

// NewScheduler 创建调度器，gun 供射手和首领开火
func NewScheduler(cfg Config, rng *rand.Rand, gun enemy.Gun) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		rng:  rng,
		gun:  gun,
		boss: bossSlot{nextScore: cfg.BossScoreStep},
	}
}

// Config 调度参数
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Update 推进一帧：生成、行为更新、越界移除，score 为当前可见分数
func (s *Scheduler) Update(dt float64, player geom.Vec3, score int) []models.Event {
	var events []models.Event

	s.enemyTimer += dt
	if s.enemyTimer > s.cfg.EnemyInterval {
		s.enemyTimer = 0
		if s.rng.Float64() < s.cfg.StarChance {
			s.stars = append(s.stars, newStar(s.spawnPoint(player)))
		} else {
			kind := models.Pick(models.EnemySpawnTable, s.rng.Float64(), models.EnemyBasic)
			s.SpawnEnemy(kind, s.spawnPoint(player))
		}
	}

	s.powerUpTimer += dt
	if s.powerUpTimer > s.cfg.PowerUpInterval {
		s.powerUpTimer = 0
		kind := models.Pick(models.PowerUpSpawnTable, s.rng.Float64(), models.PowerUpShield)
		s.powerUps = append(s.powerUps, newPowerUp(kind, s.spawnPoint(player)))
	}

	if s.boss.reschedule {
		s.boss.reschedule = false
		s.boss.nextScore = score + s.cfg.BossScoreStep
	}
	if s.boss.status == BossNone && score >= s.boss.nextScore {
		if boss, ok := s.SpawnBoss(player); ok {
			events = append(events, models.Event{
				Type:     models.EventBossSpawned,
				ActorID:  boss.ID,
				Enemy:    models.EnemyBoss,
				Position: boss.Position,
				Health:   boss.Health(),
			})
		}
	}

	events = append(events, s.updateBehaviors(dt, player)...)
	events = append(events, s.despawn(player)...)

	for _, c := range s.stars {
		c.animate(dt)
	}
	for _, c := range s.powerUps {
		c.animate(dt)
	}
	return events
}

// SpawnEnemy 在 pos 生成指定种类的敌人
func (s *Scheduler) SpawnEnemy(kind models.EnemyKind, pos geom.Vec3) *enemy.Enemy {
	if kind == models.EnemyBoss {
		kind = models.EnemyBasic
	}
	e := enemy.New(kind, pos, s.rng, s.gun)
	s.enemies = append(s.enemies, e)
	return e
}

// SpawnStar 在 pos 生成星星
func (s *Scheduler) SpawnStar(pos geom.Vec3) *Collectible {
	c := newStar(pos)
	s.stars = append(s.stars, c)
	return c
}

// SpawnPowerUp 在 pos 生成道具
func (s *Scheduler) SpawnPowerUp(kind models.PowerUpKind, pos geom.Vec3) *Collectible {
	c := newPowerUp(kind, pos)
	s.powerUps = append(s.powerUps, c)
	return c
}

// SpawnBoss 在玩家前方生成首领，已有首领时不做任何事
func (s *Scheduler) SpawnBoss(player geom.Vec3) (*enemy.Enemy, bool) {
	if s.boss.status == BossActive {
		return nil, false
	}
	boss := enemy.NewBoss(s.spawnPoint(player), s.rng, s.gun)
	s.boss = bossSlot{status: BossActive, boss: boss, nextScore: s.boss.nextScore}
	return boss, true
}

func (s *Scheduler) updateBehaviors(dt float64, player geom.Vec3) []models.Event {
	var events []models.Event
	for _, e := range s.enemies {
		s.shotsFired += e.Update(dt, player).Shots
	}

	if boss := s.Boss(); boss != nil {
		report := boss.Update(dt, player)
		s.shotsFired += report.Shots
		if report.PhaseChanged {
			events = append(events, models.Event{
				Type:     models.EventBossPhaseChanged,
				ActorID:  boss.ID,
				Enemy:    models.EnemyBoss,
				Position: boss.Position,
				Phase:    report.Phase,
				Health:   boss.Health(),
			})
		}
	}
	return events
}

// despawn 移除失效或被甩在身后的实体
func (s *Scheduler) despawn(player geom.Vec3) []models.Event {
	limit := player.Z + s.cfg.RemoveDistance

	s.enemies = compact(s.enemies, func(e *enemy.Enemy) bool {
		if e.Active && e.Position.Z > limit {
			e.Destroy()
		}
		return e.Active
	})
	s.stars = compact(s.stars, func(c *Collectible) bool {
		return c.Active && c.Position.Z <= limit
	})
	s.powerUps = compact(s.powerUps, func(c *Collectible) bool {
		return c.Active && c.Position.Z <= limit
	})

	boss := s.boss.boss
	if s.boss.status == BossActive && boss.Active && boss.Position.Z > limit {
		boss.Destroy()
		s.releaseBoss()
		return []models.Event{{
			Type:     models.EventBossEscaped,
			ActorID:  boss.ID,
			Enemy:    models.EnemyBoss,
			Position: boss.Position,
		}}
	}
	return nil
}

func (s *Scheduler) releaseBoss() {
	s.boss.status = BossNone
	s.boss.boss = nil
	s.boss.reschedule = true
}

func (s *Scheduler) spawnPoint(player geom.Vec3) geom.Vec3 {
	return geom.V(
		(s.rng.Float64()-0.5)*2*s.cfg.LateralRange,
		s.cfg.MinHeight+s.rng.Float64()*(s.cfg.MaxHeight-s.cfg.MinHeight),
		player.Z-s.cfg.SpawnDistance,
	)
}

// ApplyMagnet 把磁铁范围内的星星和道具拉向玩家，引力随距离线性衰减
func (s *Scheduler) ApplyMagnet(player geom.Vec3, dt float64) {
	pull := func(c *Collectible) {
		d := c.Position.Dist(player)
		if d >= s.cfg.MagnetRadius || d <= s.cfg.MagnetMinDistance {
			return
		}
		force := s.cfg.MagnetStrength * dt * (s.cfg.MagnetRadius - d) / s.cfg.MagnetRadius
		c.Position = c.Position.AddScaled(geom.Direction(c.Position, player), force)
	}
	for _, c := range s.stars {
		pull(c)
	}
	for _, c := range s.powerUps {
		pull(c)
	}
}

// Reset 清空所有实体和计时器，首领阈值回到初始值
func (s *Scheduler) Reset() {
	for _, e := range s.enemies {
		e.Destroy()
	}
	if s.boss.boss != nil {
		s.boss.boss.Destroy()
	}
	s.enemies = nil
	s.stars = nil
	s.powerUps = nil
	s.enemyTimer = 0
	s.powerUpTimer = 0
	s.shotsFired = 0
	s.boss = bossSlot{nextScore: s.cfg.BossScoreStep}
}

// compact 原地保留满足 keep 的元素
func compact[T any](items []T, keep func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}
