package collision

import (
	"math/rand"
	"testing"

	"github.com/jacl-coder/StarRunner-Server/internal/ledger"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/pool"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	spawner     *spawn.Scheduler
	playerShots *pool.Pool
	enemyShots  *pool.Pool
	resolver    *Resolver
	player      Player
}

func newFixture() *fixture {
	f := &fixture{
		playerShots: pool.New(pool.Options{Name: "player_shots", Capacity: 20, Extent: models.PlayerProjectileExtent}),
		enemyShots:  pool.New(pool.Options{Name: "enemy_shots", Capacity: 30, Extent: models.EnemyProjectileExtent, CullBehind: 10}),
		player: Player{
			Position: geom.V(0, 5, 0),
			Health:   ledger.NewHealth(3),
			Effects:  ledger.NewEffectLedger(),
		},
	}
	f.spawner = spawn.NewScheduler(spawn.DefaultConfig(), rand.New(rand.NewSource(1)), pool.NewLauncher(f.enemyShots, 60, 5))
	f.resolver = NewResolver(f.spawner, f.playerShots, f.enemyShots)
	return f
}

func place(t *testing.T, p *pool.Pool, pos geom.Vec3) *pool.Body {
	t.Helper()
	b, ok := p.Acquire()
	require.True(t, ok)
	b.Position = pos
	b.Life = 1
	return b
}

func types(events []models.Event) []models.EventType {
	out := make([]models.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestShotKillsBasicEnemy(t *testing.T) {
	f := newFixture()
	basic := f.spawner.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -50))
	place(t, f.playerShots, geom.V(0.5, 5, -49))

	res := f.resolver.Resolve(0.016, f.player)

	require.Len(t, res.Hits, 1)
	assert.True(t, res.Hits[0].Hit)
	assert.Same(t, basic, res.Hits[0].Enemy)
	assert.Equal(t, 0, basic.Health())
	assert.False(t, basic.Active)
	assert.Empty(t, f.spawner.Enemies())
	assert.Zero(t, f.playerShots.ActiveCount())
	assert.Equal(t, []models.EventType{models.EventEnemyKilled}, types(res.Events))
	assert.Equal(t, 100, res.Events[0].Score)
	assert.Len(t, res.KilledEnemies(), 1)
	assert.Equal(t, models.OutcomeNone, res.Outcome)
}

func TestShotOutsideRadiusMisses(t *testing.T) {
	f := newFixture()
	f.spawner.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -50))
	place(t, f.playerShots, geom.V(0, 5, -47))

	res := f.resolver.Resolve(0.016, f.player)
	assert.Empty(t, res.Hits)
	assert.Equal(t, 1, f.playerShots.ActiveCount())
	assert.Len(t, f.spawner.Enemies(), 1)
}

func TestSecondShotDoesNotHitDeadEnemy(t *testing.T) {
	f := newFixture()
	f.spawner.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -50))
	place(t, f.playerShots, geom.V(0, 5, -50))
	place(t, f.playerShots, geom.V(0, 5, -50.5))

	res := f.resolver.Resolve(0.016, f.player)
	assert.Len(t, res.Hits, 1)
	assert.Equal(t, 1, f.playerShots.ActiveCount())
}

func TestShotsDamageBossUntilDestroyed(t *testing.T) {
	f := newFixture()
	boss, ok := f.spawner.SpawnBoss(f.player.Position)
	require.True(t, ok)
	place(t, f.playerShots, boss.Position)
	place(t, f.playerShots, boss.Position.Add(geom.V(1, 0, 0)))

	res := f.resolver.Resolve(0.016, f.player)
	assert.Equal(t, []models.EventType{models.EventBossHit, models.EventBossHit}, types(res.Events))
	assert.Equal(t, 13, boss.Health())

	f.spawner.DamageBoss(12)
	place(t, f.playerShots, boss.Position)
	res = f.resolver.Resolve(0.016, f.player)
	require.Equal(t, []models.EventType{models.EventBossDestroyed}, types(res.Events))
	assert.Equal(t, 1000, res.Events[0].Score)
	assert.Equal(t, spawn.BossNone, f.spawner.BossStatus())
}

func TestShieldAbsorbsEnemyShot(t *testing.T) {
	f := newFixture()
	f.player.Effects.Add(models.EffectShield, 10)
	f.player.Effects.Add(models.EffectMagnet, 12)
	place(t, f.enemyShots, f.player.Position)

	res := f.resolver.Resolve(0.016, f.player)

	assert.Equal(t, 3, f.player.Health.Current())
	assert.False(t, f.player.Effects.HasShield())
	assert.Empty(t, f.player.Effects.Active())
	assert.Contains(t, types(res.Events), models.EventShieldAbsorbed)
	assert.NotContains(t, types(res.Events), models.EventPlayerHit)
	assert.Zero(t, f.enemyShots.ActiveCount())
}

func TestEnemyShotDamagesAndKillsPlayer(t *testing.T) {
	f := newFixture()
	place(t, f.enemyShots, f.player.Position)

	res := f.resolver.Resolve(0.016, f.player)
	assert.Equal(t, 2, f.player.Health.Current())
	assert.Equal(t, []models.EventType{models.EventPlayerHit}, types(res.Events))
	assert.False(t, res.PlayerDied)

	f.player.Health.TakeDamage(1)
	place(t, f.enemyShots, f.player.Position)
	place(t, f.enemyShots, f.player.Position.Add(geom.V(0.1, 0, 0)))

	res = f.resolver.Resolve(0.016, f.player)
	assert.True(t, res.PlayerDied)
	assert.Equal(t, models.OutcomeGameOver, res.Outcome)
	assert.Equal(t, 0, f.player.Health.Current())

	died := 0
	for _, e := range res.Events {
		if e.Type == models.EventPlayerDied {
			died++
		}
	}
	assert.Equal(t, 1, died)
}

func TestBossContactDealsTwoWithCooldown(t *testing.T) {
	f := newFixture()
	f.player.Health = ledger.NewHealth(5)
	boss, ok := f.spawner.SpawnBoss(f.player.Position)
	require.True(t, ok)
	boss.Position = f.player.Position

	f.resolver.Resolve(0.016, f.player)
	assert.Equal(t, 3, f.player.Health.Current())

	f.resolver.Resolve(0.5, f.player)
	assert.Equal(t, 3, f.player.Health.Current())

	f.resolver.Resolve(0.6, f.player)
	assert.Equal(t, 1, f.player.Health.Current())
}

func TestEnemyRamIsDestroyed(t *testing.T) {
	f := newFixture()
	f.spawner.SpawnEnemy(models.EnemyTank, f.player.Position)

	res := f.resolver.Resolve(0.016, f.player)
	assert.Equal(t, []models.EventType{models.EventEnemyRammed, models.EventPlayerHit}, types(res.Events))
	assert.Empty(t, f.spawner.Enemies())
	assert.Equal(t, 2, f.player.Health.Current())
}

func TestCollectStarAndPowerUp(t *testing.T) {
	f := newFixture()
	star := f.spawner.SpawnStar(f.player.Position)
	f.spawner.SpawnPowerUp(models.PowerUpRapidFire, f.player.Position.Add(geom.V(0, 0, 0.5)))

	res := f.resolver.Resolve(0.016, f.player)
	assert.Equal(t, models.OutcomeScore, res.Outcome)
	assert.Equal(t, []models.EventType{models.EventStarCollected, models.EventPowerUpCollected}, types(res.Events))
	assert.Equal(t, star.ID, res.Events[0].ActorID)
	assert.Equal(t, StarScore, res.Events[0].Score)
	require.Len(t, res.Collected, 1)
	assert.Equal(t, models.PowerUpRapidFire, res.Collected[0].PowerUp)
	assert.Empty(t, f.spawner.Stars())
}
