// resolver.go

package collision

import (
	"github.com/jacl-coder/StarRunner-Server/internal/enemy"
	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/pool"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 伤害与基础分值
const (
	ProjectileDamage    = 1
	EnemyContactDamage  = 1
	BossContactDamage   = 2
	StarScore           = 500
	BossContactCooldown = 1.0 // 首领撞击后的无敌时间
)

// Player 参与碰撞的玩家状态
type Player struct {
	Position geom.Vec3
	Health   *ledger.Health
	Effects  *ledger.EffectLedger
}

// Bounds 玩家包围盒
func (p Player) Bounds() geom.AABB {
	return geom.BoxAt(p.Position, models.PlayerExtent)
}

// Result 一帧的碰撞结果，只描述发生了什么，不修改分数
type Result struct {
	Outcome    models.Outcome
	ActorID    string // 导致该结果的实体
	Events     []models.Event
	Hits       []spawn.Hit
	Collected  []*spawn.Collectible // 拾取的道具，由调用方应用效果
	PlayerDied bool
}

// Resolver 碰撞与伤害判定
type Resolver struct {
	spawner     *spawn.Scheduler
	playerShots *pool.Pool
	enemyShots  *pool.Pool

	bossContactTimer float64
}

// NewResolver 创建碰撞判定器
func NewResolver(spawner *spawn.Scheduler, playerShots, enemyShots *pool.Pool) *Resolver {
	return &Resolver{
		spawner:     spawner,
		playerShots: playerShots,
		enemyShots:  enemyShots,
	}
}

// Resolve 按顺序执行各轮碰撞检测：收集物、子弹打敌人、子弹打首领、玩家受击
func (r *Resolver) Resolve(dt float64, player Player) Result {
	res := Result{Outcome: models.OutcomeNone}
	if r.bossContactTimer > 0 {
		r.bossContactTimer -= dt
	}

	r.collectibles(player, &res)
	r.shotsVsEnemies(&res)
	r.shotsVsBoss(&res)
	r.hitsOnPlayer(player, &res)
	return res
}

// Reset 清空内部计时
func (r *Resolver) Reset() {
	r.bossContactTimer = 0
}

func (r *Resolver) collectibles(player Player, res *Result) {
	box := player.Bounds()

	for _, star := range r.spawner.CollectStars(box) {
		res.Events = append(res.Events, models.Event{
			Type:     models.EventStarCollected,
			ActorID:  star.ID,
			Position: star.Position,
			Score:    StarScore,
		})
		res.Outcome = models.OutcomeScore
		res.ActorID = star.ID
	}

	for _, powerUp := range r.spawner.CollectPowerUps(box) {
		res.Events = append(res.Events, models.Event{
			Type:     models.EventPowerUpCollected,
			ActorID:  powerUp.ID,
			PowerUp:  powerUp.PowerUp,
			Position: powerUp.Position,
		})
		res.Collected = append(res.Collected, powerUp)
		res.Outcome = models.OutcomeScore
		res.ActorID = powerUp.ID
	}
}

func (r *Resolver) shotsVsEnemies(res *Result) {
	r.playerShots.Each(func(shot *pool.Body) bool {
		hit := r.spawner.HitEnemyNear(shot.Position, ProjectileDamage)
		if !hit.Hit {
			return true
		}
		r.playerShots.Release(shot)
		res.Hits = append(res.Hits, hit)

		e := hit.Enemy
		event := models.Event{
			Type:     models.EventEnemyHit,
			ActorID:  e.ID,
			Enemy:    e.Kind,
			Position: e.Position,
			Damage:   ProjectileDamage,
			Health:   e.Health(),
		}
		if hit.Killed {
			event.Type = models.EventEnemyKilled
			event.Score = e.Config.ScoreValue
		}
		res.Events = append(res.Events, event)
		return true
	})
}

func (r *Resolver) shotsVsBoss(res *Result) {
	boss := r.spawner.Boss()
	if boss == nil {
		return
	}
	bossBox := boss.Bounds()

	r.playerShots.Each(func(shot *pool.Body) bool {
		if !r.playerShots.Bounds(shot).Intersects(bossBox) {
			return true
		}
		r.playerShots.Release(shot)

		_, killed := r.spawner.DamageBoss(ProjectileDamage)
		event := models.Event{
			Type:     models.EventBossHit,
			ActorID:  boss.ID,
			Enemy:    models.EnemyBoss,
			Position: boss.Position,
			Damage:   ProjectileDamage,
			Health:   boss.Health(),
			Phase:    boss.Boss().Phase,
		}
		if killed {
			event.Type = models.EventBossDestroyed
			event.Score = boss.Config.ScoreValue
		}
		res.Events = append(res.Events, event)
		return !killed
	})
}

func (r *Resolver) hitsOnPlayer(player Player, res *Result) {
	box := player.Bounds()

	r.enemyShots.Each(func(shot *pool.Body) bool {
		if !r.enemyShots.Bounds(shot).Intersects(box) {
			return true
		}
		r.enemyShots.Release(shot)
		r.damagePlayer(player, ProjectileDamage, "", res)
		return !res.PlayerDied
	})

	if boss := r.spawner.Boss(); boss != nil && !res.PlayerDied && r.bossContactTimer <= 0 {
		if boss.Bounds().Intersects(box) {
			r.bossContactTimer = BossContactCooldown
			r.damagePlayer(player, BossContactDamage, boss.ID, res)
		}
	}

	for _, e := range r.spawner.RamEnemies(box) {
		res.Events = append(res.Events, models.Event{
			Type:     models.EventEnemyRammed,
			ActorID:  e.ID,
			Enemy:    e.Kind,
			Position: e.Position,
		})
		if !res.PlayerDied {
			r.damagePlayer(player, EnemyContactDamage, e.ID, res)
		}
	}
}

// damagePlayer 护盾在场时清空全部效果并抵消伤害，否则扣血并判定死亡
func (r *Resolver) damagePlayer(player Player, damage int, source string, res *Result) {
	if player.Effects.HasShield() {
		for _, effect := range player.Effects.Active() {
			res.Events = append(res.Events, models.Event{
				Type:     models.EventEffectExpired,
				Effect:   effect.Kind,
				Position: player.Position,
			})
		}
		player.Effects.Clear()
		res.Events = append(res.Events, models.Event{
			Type:     models.EventShieldAbsorbed,
			ActorID:  source,
			Position: player.Position,
			Damage:   damage,
		})
		return
	}

	died := player.Health.TakeDamage(damage)
	res.Events = append(res.Events, models.Event{
		Type:     models.EventPlayerHit,
		ActorID:  source,
		Position: player.Position,
		Damage:   damage,
		Health:   player.Health.Current(),
	})
	if died {
		res.PlayerDied = true
		res.Outcome = models.OutcomeGameOver
		res.ActorID = source
		res.Events = append(res.Events, models.Event{
			Type:     models.EventPlayerDied,
			ActorID:  source,
			Position: player.Position,
		})
	}
}

// KilledEnemies 本帧被子弹击杀的敌人
func (res Result) KilledEnemies() []*enemy.Enemy {
	var killed []*enemy.Enemy
	for _, hit := range res.Hits {
		if hit.Killed {
			killed = append(killed, hit.Enemy)
		}
	}
	return killed
}
