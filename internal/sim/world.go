// world.go

package sim

import (
	"math"
	"math/rand"

	"github.com/jacl-coder/StarRunner-Server/internal/collision"
	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/pool"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 投射物参数
const (
	PlayerShotSpeed = 100.0
	PlayerShotLife  = 2.0
	EnemyShotSpeed  = 60.0
	EnemyShotLife   = 5.0
	EnemyShotCull   = 10.0 // 敌方子弹落后玩家多远时回收
	ParticleDrag    = 0.95 // 每 1/60 秒保留的速度比例
	PowerUpHeal     = 1
	ComboMilestone  = 5
)

// 各事件触发的粒子数量
var burstSizes = map[models.EventType]int{
	models.EventEnemyKilled:      30,
	models.EventBossHit:          30,
	models.EventBossDestroyed:    100,
	models.EventPlayerHit:        30,
	models.EventPlayerDied:       50,
	models.EventPowerUpCollected: 20,
	models.EventShieldAbsorbed:   30,
	models.EventComboMilestone:   40,
}

// Config 模拟参数
type Config struct {
	Seed         int64
	PlayerShots  int
	EnemyShots   int
	Particles    int
	PlayerHealth int
	Spawn        spawn.Config
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		Seed:         1,
		PlayerShots:  20,
		EnemyShots:   30,
		Particles:    200,
		PlayerHealth: 3,
		Spawn:        spawn.DefaultConfig(),
	}
}

// World 一局游戏的完整模拟，每帧由宿主调用一次 Update 或 Step
type World struct {
	cfg Config
	rng *rand.Rand

	pilot       *Pilot
	combo       *ledger.Combo
	score       *ledger.Score
	playerShots *pool.Pool
	enemyShots  *pool.Pool
	particles   *pool.Pool
	gun         *pool.Launcher
	enemyGun    *pool.Launcher
	spawner     *spawn.Scheduler
	resolver    *collision.Resolver

	running bool
	frame   int64
	elapsed float64
	kills   int
	bosses  int
}

// NewWorld 创建模拟世界，创建后需调用 Start 开局
func NewWorld(cfg Config) *World {
	rng := rand.New(rand.NewSource(cfg.Seed))

	playerShots := pool.New(pool.Options{
		Name:     "player_shots",
		Capacity: cfg.PlayerShots,
		Extent:   models.PlayerProjectileExtent,
	})
	enemyShots := pool.New(pool.Options{
		Name:       "enemy_shots",
		Capacity:   cfg.EnemyShots,
		Extent:     models.EnemyProjectileExtent,
		CullBehind: EnemyShotCull,
	})
	particles := pool.New(pool.Options{
		Name:     "particles",
		Capacity: cfg.Particles,
		Drag:     ParticleDrag,
	})

	enemyGun := pool.NewLauncher(enemyShots, EnemyShotSpeed, EnemyShotLife)
	spawner := spawn.NewScheduler(cfg.Spawn, rng, enemyGun)

	return &World{
		cfg:         cfg,
		rng:         rng,
		pilot:       newPilot(cfg.PlayerHealth),
		combo:       ledger.NewCombo(),
		score:       ledger.NewScore(),
		playerShots: playerShots,
		enemyShots:  enemyShots,
		particles:   particles,
		gun:         pool.NewLauncher(playerShots, PlayerShotSpeed, PlayerShotLife),
		enemyGun:    enemyGun,
		spawner:     spawner,
		resolver:    collision.NewResolver(spawner, playerShots, enemyShots),
	}
}

// Frame 一帧的输出
type Frame struct {
	Frame      int64           `json:"frame"`
	Elapsed    float64         `json:"elapsed"`
	Outcome    models.Outcome  `json:"outcome"`
	ActorID    string          `json:"actor_id,omitempty"`
	Events     []models.Event  `json:"events"`
	Score      int             `json:"score"`
	Combo      int             `json:"combo"`
	Multiplier float64         `json:"multiplier"`
	Health     int             `json:"health"`
	MaxHealth  int             `json:"max_health"`
	Effects    []ledger.Effect `json:"effects"`
	Position   geom.Vec3       `json:"position"`
	BossActive bool            `json:"boss_active"`
	GameOver   bool            `json:"game_over"`
}

// Running 当前是否在局中
func (w *World) Running() bool {
	return w.running
}

// Start 开始新的一局
func (w *World) Start() {
	w.resetAll()
	w.score.StartNew()
	w.running = true
}

// End 结束本局并结算最终分数
func (w *World) End() int {
	w.running = false
	return w.score.Finalize()
}

// Reset 保存上一局分数并清空全部状态
func (w *World) Reset() {
	w.resetAll()
	w.score.Reset()
	w.running = false
}

func (w *World) resetAll() {
	w.pilot.reset()
	w.combo.Reset()
	w.playerShots.Reset()
	w.enemyShots.Reset()
	w.particles.Reset()
	w.spawner.Reset()
	w.resolver.Reset()
	w.frame = 0
	w.elapsed = 0
	w.kills = 0
	w.bosses = 0
}

// Step 由意图驱动飞船移动后推进一帧
func (w *World) Step(dt float64, in Intent) Frame {
	if w.running {
		w.pilot.Move(dt, in)
	}
	return w.Update(dt, w.pilot.Position, in)
}

// Update 推进一帧，player 为宿主给出的玩家位置
func (w *World) Update(dt float64, player geom.Vec3, in Intent) Frame {
	if !w.running || dt <= 0 {
		return w.frameOf(Frame{})
	}

	w.frame++
	w.elapsed += dt
	w.pilot.Position = player

	events := w.spawner.Update(dt, player, w.score.Current())
	if w.pilot.Effects.HasMagnet() {
		w.spawner.ApplyMagnet(player, dt)
	}

	for _, muzzle := range w.pilot.muzzles(dt, in) {
		w.gun.Fire(muzzle, pool.Forward)
	}
	w.playerShots.Tick(dt, player.Z)
	w.enemyShots.Tick(dt, player.Z)
	w.particles.Tick(dt, player.Z)

	res := w.resolver.Resolve(dt, collision.Player{
		Position: player,
		Health:   w.pilot.Health,
		Effects:  w.pilot.Effects,
	})
	events = append(events, w.apply(res)...)

	for _, kind := range w.pilot.Effects.Tick(dt) {
		events = append(events, models.Event{Type: models.EventEffectExpired, Effect: kind, Position: player})
	}
	if change, reset := w.combo.Tick(dt); reset {
		events = append(events, models.Event{
			Type:       models.EventComboChanged,
			Combo:      change.Count,
			Multiplier: change.Multiplier,
		})
	}
	w.score.UpdateFromTime(dt, w.elapsed)

	out := Frame{Outcome: res.Outcome, ActorID: res.ActorID, Events: events}
	if res.PlayerDied {
		w.End()
		out.GameOver = true
	}
	return w.frameOf(out)
}

// apply 把碰撞结果落实到分数、连击、效果和粒子上
func (w *World) apply(res collision.Result) []models.Event {
	events := make([]models.Event, 0, len(res.Events))
	scoreMult := w.pilot.Effects.ScoreMultiplier()

	for _, ev := range res.Events {
		var follow []models.Event
		switch ev.Type {
		case models.EventStarCollected:
			ev.Score = w.addScore(float64(ev.Score) * scoreMult)
		case models.EventEnemyKilled:
			// 先按击杀前的连击倍率计分，再计入连击
			ev.Score = w.addScore(float64(ev.Score) * w.combo.Multiplier() * scoreMult)
			w.kills++
			follow = w.addKill()
		case models.EventBossDestroyed:
			ev.Score = w.addScore(float64(ev.Score) * w.combo.Multiplier() * scoreMult)
			w.kills++
			w.bosses++
		case models.EventPowerUpCollected:
			follow = w.applyPowerUp(ev.PowerUp, ev.Position)
		}

		events = append(events, ev)
		w.burst(ev)
		if ev.Score > 0 {
			events = append(events, models.Event{
				Type:     models.EventScoreAdded,
				ActorID:  ev.ActorID,
				Position: ev.Position,
				Score:    ev.Score,
			})
		}
		events = append(events, follow...)
	}
	return events
}

func (w *World) addScore(amount float64) int {
	points := int(math.Floor(amount))
	w.score.Add(float64(points))
	return points
}

func (w *World) addKill() []models.Event {
	change := w.combo.AddKill()
	events := []models.Event{{
		Type:       models.EventComboChanged,
		Combo:      change.Count,
		Multiplier: change.Multiplier,
	}}
	if change.Count%ComboMilestone == 0 {
		milestone := models.Event{
			Type:       models.EventComboMilestone,
			Position:   w.pilot.Position,
			Combo:      change.Count,
			Multiplier: change.Multiplier,
		}
		events = append(events, milestone)
		w.burst(milestone)
	}
	return events
}

func (w *World) applyPowerUp(kind models.PowerUpKind, pos geom.Vec3) []models.Event {
	effect, ok := kind.EffectKind()
	if !ok {
		w.pilot.Health.Heal(PowerUpHeal)
		return []models.Event{{
			Type:     models.EventPlayerHealed,
			PowerUp:  kind,
			Position: pos,
			Health:   w.pilot.Health.Current(),
		}}
	}

	if !w.pilot.Effects.Add(effect, kind.Config().Duration) {
		return nil
	}
	return []models.Event{{
		Type:     models.EventEffectAdded,
		PowerUp:  kind,
		Effect:   effect,
		Position: pos,
	}}
}

func (w *World) burst(ev models.Event) {
	if n, ok := burstSizes[ev.Type]; ok {
		pool.Burst(w.particles, w.rng, ev.Position, n)
	}
}

func (w *World) frameOf(f Frame) Frame {
	f.Frame = w.frame
	f.Elapsed = w.elapsed
	f.Score = w.score.Current()
	f.Combo = w.combo.Count()
	f.Multiplier = w.combo.Multiplier()
	f.Health = w.pilot.Health.Current()
	f.MaxHealth = w.pilot.Health.Max()
	f.Effects = w.pilot.Effects.Active()
	f.Position = w.pilot.Position
	f.BossActive = w.spawner.BossStatus() == spawn.BossActive
	if f.Outcome == "" {
		f.Outcome = models.OutcomeNone
	}
	return f
}

// Score 当前可见分数
func (w *World) Score() int {
	return w.score.Current()
}

// FinalScore 最终分数
func (w *World) FinalScore() int {
	return w.score.Final()
}

// PreviousScore 上一局分数
func (w *World) PreviousScore() int {
	return w.score.Previous()
}

// MaxCombo 本局最高连击
func (w *World) MaxCombo() int {
	return w.combo.Max()
}

// Kills 本局击杀数
func (w *World) Kills() int {
	return w.kills
}

// BossesDefeated 本局击败的 Boss 数
func (w *World) BossesDefeated() int {
	return w.bosses
}

// Distance 本局沿 -Z 飞行的距离
func (w *World) Distance() float64 {
	return StartPosition.Z - w.pilot.Position.Z
}

// Elapsed 本局已经过的模拟时间
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Pilot 玩家飞船
func (w *World) Pilot() *Pilot {
	return w.pilot
}

// Spawner 生成调度器
func (w *World) Spawner() *spawn.Scheduler {
	return w.spawner
}

// Pools 所有对象池，按玩家子弹、敌方子弹、粒子排列
func (w *World) Pools() []*pool.Pool {
	return []*pool.Pool{w.playerShots, w.enemyShots, w.particles}
}
