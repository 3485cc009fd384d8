package spawn

import (
	"math/rand"
	"testing"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopGun struct{}

func (nopGun) Shoot(from, target geom.Vec3) bool { return true }

func newTestScheduler(mutate func(*Config)) *Scheduler {
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewScheduler(cfg, rand.New(rand.NewSource(42)), nopGun{})
}

func eventTypes(events []models.Event) []models.EventType {
	types := make([]models.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestSpawnPointWithinBounds(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, -500)
	for i := 0; i < 200; i++ {
		p := s.spawnPoint(player)
		assert.GreaterOrEqual(t, p.X, -10.0)
		assert.LessOrEqual(t, p.X, 10.0)
		assert.GreaterOrEqual(t, p.Y, 1.0)
		assert.LessOrEqual(t, p.Y, 9.0)
		assert.Equal(t, -600.0, p.Z)
	}
}

func TestEnemyTimerSpawnsAhead(t *testing.T) {
	s := newTestScheduler(func(c *Config) { c.StarChance = 0 })
	player := geom.V(0, 5, -50)

	s.Update(0.5, player, 0)
	assert.Empty(t, s.Enemies())

	s.Update(0.51, player, 0)
	require.Len(t, s.Enemies(), 1)
	assert.Equal(t, -150.0, s.Enemies()[0].Position.Z)
	assert.Empty(t, s.Stars())
}

func TestStarChanceSpawnsStars(t *testing.T) {
	s := newTestScheduler(func(c *Config) { c.StarChance = 1 })
	s.Update(1.01, geom.V(0, 5, 0), 0)
	assert.Len(t, s.Stars(), 1)
	assert.Empty(t, s.Enemies())
	assert.True(t, s.Stars()[0].IsStar())
}

func TestPowerUpTimer(t *testing.T) {
	s := newTestScheduler(nil)
	s.Update(8.01, geom.V(0, 5, 0), 0)
	require.Len(t, s.PowerUps(), 1)
	assert.NotEmpty(t, s.PowerUps()[0].PowerUp)
}

func TestDespawnBehindPlayer(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, -100)
	gone := s.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -79))
	kept := s.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -81))
	s.SpawnStar(geom.V(0, 5, -70))
	s.SpawnPowerUp(models.PowerUpMagnet, geom.V(0, 5, -90))

	s.Update(0.01, player, 0)
	require.Len(t, s.Enemies(), 1)
	assert.Same(t, kept, s.Enemies()[0])
	assert.False(t, gone.Active)
	assert.Empty(t, s.Stars())
	assert.Len(t, s.PowerUps(), 1)
}

func TestBossIsScoreGatedAndExclusive(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, 0)

	assert.Empty(t, eventTypes(s.Update(0.01, player, 9999)))
	assert.Equal(t, BossNone, s.BossStatus())

	events := s.Update(0.01, player, 10000)
	assert.Contains(t, eventTypes(events), models.EventBossSpawned)
	require.NotNil(t, s.Boss())
	assert.Equal(t, BossActive, s.BossStatus())

	_, ok := s.SpawnBoss(player)
	assert.False(t, ok, "only one boss at a time")

	hit, killed := s.DamageBoss(15)
	assert.True(t, hit)
	assert.True(t, killed)
	assert.Equal(t, BossNone, s.BossStatus())
	assert.Nil(t, s.Boss())

	hit, _ = s.DamageBoss(1)
	assert.False(t, hit)

	assert.NotContains(t, eventTypes(s.Update(0.01, player, 12000)), models.EventBossSpawned)
	assert.Equal(t, 22000, s.NextBossScore())
}

func TestBossEscapeSchedulesNextThreshold(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, 0)
	boss, ok := s.SpawnBoss(player)
	require.True(t, ok)
	boss.Position.Z = 25

	events := s.Update(0.01, player, 500)
	assert.Contains(t, eventTypes(events), models.EventBossEscaped)
	assert.Equal(t, BossNone, s.BossStatus())
	assert.False(t, boss.Active)

	s.Update(0.01, player, 600)
	assert.Equal(t, 10600, s.NextBossScore())
}

func TestBossPhaseChangeEvent(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, 0)
	_, ok := s.SpawnBoss(player)
	require.True(t, ok)

	s.DamageBoss(8)
	events := s.Update(0.01, player, 0)
	require.Contains(t, eventTypes(events), models.EventBossPhaseChanged)
	for _, e := range events {
		if e.Type == models.EventBossPhaseChanged {
			assert.Equal(t, 2, e.Phase)
		}
	}
}

func TestHitEnemyNearEvictsKill(t *testing.T) {
	s := newTestScheduler(nil)
	basic := s.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -100))
	tank := s.SpawnEnemy(models.EnemyTank, geom.V(8, 5, -100))

	miss := s.HitEnemyNear(geom.V(4, 5, -100), 1)
	assert.False(t, miss.Hit)

	hit := s.HitEnemyNear(geom.V(0, 5, -101), 1)
	assert.True(t, hit.Hit)
	assert.True(t, hit.Killed)
	assert.Same(t, basic, hit.Enemy)
	require.Len(t, s.Enemies(), 1)

	hit = s.HitEnemyNear(geom.V(8, 5, -99), 1)
	assert.True(t, hit.Hit)
	assert.False(t, hit.Killed)
	assert.Same(t, tank, hit.Enemy)
	assert.Len(t, s.Enemies(), 1)
}

func TestRamAndCollect(t *testing.T) {
	s := newTestScheduler(nil)
	box := geom.BoxAt(geom.V(0, 5, 0), models.PlayerExtent)
	s.SpawnEnemy(models.EnemyBasic, geom.V(0.5, 5, 0.5))
	s.SpawnEnemy(models.EnemyBasic, geom.V(5, 5, 0))
	s.SpawnStar(geom.V(0, 5, -0.5))
	s.SpawnStar(geom.V(0, 5, -10))
	s.SpawnPowerUp(models.PowerUpShield, geom.V(0.3, 5.2, 0))

	assert.Len(t, s.RamEnemies(box), 1)
	assert.Len(t, s.Enemies(), 1)

	stars := s.CollectStars(box)
	require.Len(t, stars, 1)
	assert.False(t, stars[0].Active)
	assert.Len(t, s.Stars(), 1)

	powerUps := s.CollectPowerUps(box)
	require.Len(t, powerUps, 1)
	assert.Equal(t, models.PowerUpShield, powerUps[0].PowerUp)
	assert.Empty(t, s.PowerUps())
}

func TestMagnetLinearFalloff(t *testing.T) {
	s := newTestScheduler(nil)
	player := geom.V(0, 5, 0)
	near := s.SpawnStar(geom.V(10, 5, 0))
	far := s.SpawnStar(geom.V(20, 5, 0))
	touching := s.SpawnPowerUp(models.PowerUpHealth, geom.V(0.4, 5, 0))

	s.ApplyMagnet(player, 0.1)
	assert.InDelta(t, 10-25*0.1*5.0/15.0, near.Position.X, 1e-9)
	assert.Equal(t, 20.0, far.Position.X)
	assert.Equal(t, 0.4, touching.Position.X)
}

func TestRemoveEnemyAndReset(t *testing.T) {
	s := newTestScheduler(nil)
	e := s.SpawnEnemy(models.EnemyFast, geom.V(0, 5, -100))
	s.SpawnStar(geom.V(0, 5, -100))
	assert.True(t, s.RemoveEnemy(e))
	assert.False(t, s.RemoveEnemy(e))

	s.SpawnEnemy(models.EnemyBasic, geom.V(0, 5, -100))
	s.SpawnBoss(geom.V(0, 5, 0))
	s.Reset()
	assert.Empty(t, s.Enemies())
	assert.Empty(t, s.Stars())
	assert.Empty(t, s.PowerUps())
	assert.Equal(t, BossNone, s.BossStatus())
	assert.Equal(t, 10000, s.NextBossScore())
}
