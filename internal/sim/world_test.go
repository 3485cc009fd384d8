package sim

import (
	"testing"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(DefaultConfig())
	w.Start()
	require.True(t, w.Running())
	return w
}

func hasEvent(f Frame, typ models.EventType) (models.Event, bool) {
	for _, e := range f.Events {
		if e.Type == typ {
			return e, true
		}
	}
	return models.Event{}, false
}

func TestUpdateIsNoopBeforeStart(t *testing.T) {
	w := NewWorld(DefaultConfig())
	f := w.Step(0.1, Intent{Left: true})
	assert.Zero(t, f.Frame)
	assert.Empty(t, f.Events)
	assert.Equal(t, models.OutcomeNone, f.Outcome)
	assert.Equal(t, StartPosition, f.Position)
}

func TestPilotFlyForwardAndClamp(t *testing.T) {
	w := newStartedWorld(t)
	for i := 0; i < 60; i++ {
		w.Step(1.0/60, Intent{Left: true, Down: true})
	}
	p := w.Pilot()
	assert.InDelta(t, -30.0, p.Position.Z, 1e-6)
	assert.InDelta(t, -15.0, p.Position.X, 1e-9)
	assert.Equal(t, MinY, p.Position.Y)
	assert.InDelta(t, MaxRoll, p.Rotation.Z, 1e-9)
	assert.InDelta(t, -MaxPitch, p.Rotation.X, 1e-9)
}

func TestSpeedBoostMultipliesForwardSpeed(t *testing.T) {
	w := newStartedWorld(t)
	w.Pilot().Effects.Add(models.EffectSpeedBoost, 6)
	w.Step(0.1, Intent{})
	assert.InDelta(t, -4.5, w.Pilot().Position.Z, 1e-9)
}

func TestPassiveScoreTrickle(t *testing.T) {
	w := newStartedWorld(t)
	for i := 0; i < 100; i++ {
		w.Update(0.01, w.Pilot().Position, Intent{})
	}
	assert.InDelta(t, 10, w.Score(), 1)
}

func TestShootCooldownAndMultiShot(t *testing.T) {
	w := newStartedWorld(t)
	shots := w.Pools()[0]

	w.Step(0.01, Intent{Shoot: true})
	assert.Equal(t, 1, shots.ActiveCount())
	w.Step(0.01, Intent{Shoot: true})
	assert.Equal(t, 1, shots.ActiveCount())

	for i := 0; i < 20; i++ {
		w.Step(0.01, Intent{})
	}
	w.Pilot().Effects.Add(models.EffectMultiShot, 10)
	w.Step(0.01, Intent{Shoot: true})
	assert.Equal(t, 4, shots.ActiveCount())
}

func TestKillScoresWithComboBeforeIncrement(t *testing.T) {
	w := newStartedWorld(t)
	pos := w.Pilot().Position

	w.Spawner().SpawnEnemy(models.EnemyBasic, pos.Add(geom.V(0, 0, -1.8)))
	f := w.Update(0.001, pos, Intent{Shoot: true})

	killed, ok := hasEvent(f, models.EventEnemyKilled)
	require.True(t, ok)
	assert.Equal(t, 100, killed.Score)
	combo, ok := hasEvent(f, models.EventComboChanged)
	require.True(t, ok)
	assert.Equal(t, 1, combo.Combo)
	_, ok = hasEvent(f, models.EventScoreAdded)
	assert.True(t, ok)
	assert.Equal(t, 1, w.Kills())

	for i := 0; i < 300; i++ {
		w.Update(0.001, pos, Intent{})
	}
	w.Spawner().SpawnEnemy(models.EnemyBasic, pos.Add(geom.V(0, 0, -1.8)))
	f = w.Update(0.001, pos, Intent{Shoot: true})
	killed, ok = hasEvent(f, models.EventEnemyKilled)
	require.True(t, ok)
	assert.Equal(t, 110, killed.Score)
	assert.Equal(t, 2, f.Combo)
	assert.GreaterOrEqual(t, w.Score(), 100)
}

func TestStarScoreUsesEffectMultiplier(t *testing.T) {
	w := newStartedWorld(t)
	w.Pilot().Effects.Add(models.EffectScoreMultiplier, 15)
	w.Spawner().SpawnStar(w.Pilot().Position)

	f := w.Update(0.001, w.Pilot().Position, Intent{})
	star, ok := hasEvent(f, models.EventStarCollected)
	require.True(t, ok)
	assert.Equal(t, 1000, star.Score)
	assert.Equal(t, models.OutcomeScore, f.Outcome)
}

func TestPowerUpsApplyEffectsAndHeal(t *testing.T) {
	w := newStartedWorld(t)
	pos := w.Pilot().Position
	w.Pilot().Health.TakeDamage(1)

	w.Spawner().SpawnPowerUp(models.PowerUpHealth, pos)
	f := w.Update(0.001, pos, Intent{})
	_, ok := hasEvent(f, models.EventPlayerHealed)
	assert.True(t, ok)
	assert.Equal(t, 3, f.Health)

	w.Spawner().SpawnPowerUp(models.PowerUpShield, pos)
	f = w.Update(0.001, pos, Intent{})
	added, ok := hasEvent(f, models.EventEffectAdded)
	require.True(t, ok)
	assert.Equal(t, models.EffectShield, added.Effect)
	assert.True(t, w.Pilot().Effects.HasShield())
	require.Len(t, f.Effects, 1)
	assert.Positive(t, w.Snapshot().ParticleCount)
}

func TestDeathEndsRun(t *testing.T) {
	w := newStartedWorld(t)
	pos := w.Pilot().Position
	w.Pilot().Health.TakeDamage(2)

	shot, ok := w.Pools()[1].Acquire()
	require.True(t, ok)
	shot.Position = pos
	shot.Life = 1

	f := w.Update(0.001, pos, Intent{})
	assert.True(t, f.GameOver)
	assert.Equal(t, models.OutcomeGameOver, f.Outcome)
	assert.False(t, w.Running())
	_, ok = hasEvent(f, models.EventPlayerDied)
	assert.True(t, ok)

	final := w.FinalScore()
	after := w.Update(0.1, pos, Intent{})
	assert.Equal(t, f.Frame, after.Frame)

	w.Reset()
	assert.Equal(t, final, w.PreviousScore())
	w.Start()
	assert.Zero(t, w.Score())
	assert.Equal(t, final, w.PreviousScore())
	assert.Equal(t, 3, w.Pilot().Health.Current())
}

func TestSnapshotCopiesLiveActors(t *testing.T) {
	w := newStartedWorld(t)
	pos := w.Pilot().Position
	w.Spawner().SpawnEnemy(models.EnemyTank, pos.Add(geom.V(5, 0, -50)))
	w.Spawner().SpawnStar(pos.Add(geom.V(-5, 0, -50)))
	w.Step(0.01, Intent{Shoot: true})

	snap := w.Snapshot()
	assert.Len(t, snap.Enemies, 1)
	assert.Len(t, snap.Stars, 1)
	assert.Len(t, snap.PlayerShots, 1)
	assert.Nil(t, snap.Boss)
	assert.Contains(t, snap.DroppedByPools, "particles")

	w.Spawner().RemoveEnemy(snap.Enemies[0])
	assert.Len(t, snap.Enemies, 1)
}
