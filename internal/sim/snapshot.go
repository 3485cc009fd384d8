package sim

import (
	"github.com/jacl-coder/StarRunner-Server/internal/enemy"
	"github.com/jacl-coder/StarRunner-Server/internal/pool"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// Snapshot 当前帧所有存活实体，供渲染端使用
type Snapshot struct {
	Frame          int64
	PilotPosition  geom.Vec3
	PilotRotation  geom.Vec3
	Enemies        []*enemy.Enemy
	Boss           *enemy.Enemy
	Stars          []*spawn.Collectible
	PowerUps       []*spawn.Collectible
	PlayerShots    []pool.Body
	EnemyShots     []pool.Body
	ParticleCount  int
	DroppedByPools map[string]uint64
}

// Snapshot 生成快照，切片与内部列表互不影响
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:          w.frame,
		PilotPosition:  w.pilot.Position,
		PilotRotation:  w.pilot.Rotation,
		Enemies:        append([]*enemy.Enemy(nil), w.spawner.Enemies()...),
		Boss:           w.spawner.Boss(),
		Stars:          append([]*spawn.Collectible(nil), w.spawner.Stars()...),
		PowerUps:       append([]*spawn.Collectible(nil), w.spawner.PowerUps()...),
		PlayerShots:    activeBodies(w.playerShots),
		EnemyShots:     activeBodies(w.enemyShots),
		ParticleCount:  w.particles.ActiveCount(),
		DroppedByPools: make(map[string]uint64, 3),
	}
	for _, p := range w.Pools() {
		snap.DroppedByPools[p.Name()] = p.Dropped()
	}
	return snap
}

func activeBodies(p *pool.Pool) []pool.Body {
	bodies := make([]pool.Body, 0, p.ActiveCount())
	p.Each(func(b *pool.Body) bool {
		bodies = append(bodies, *b)
		return true
	})
	return bodies
}
