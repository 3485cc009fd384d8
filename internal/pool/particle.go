package pool

import (
	"math"
	"math/rand"

	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// 粒子参数
const (
	ParticleLife     = 2.0
	ParticleMinSpeed = 10.0
	ParticleMaxSpeed = 25.0
)

// Burst 在 pos 处爆出最多 count 个粒子，速度方向在球面上均匀分布，返回实际生成数量
func Burst(p *Pool, rng *rand.Rand, pos geom.Vec3, count int) int {
	spawned := 0
	for spawned < count {
		b, ok := p.Acquire()
		if !ok {
			break
		}

		theta := rng.Float64() * math.Pi * 2
		phi := math.Acos(2*rng.Float64() - 1)
		speed := ParticleMinSpeed + rng.Float64()*(ParticleMaxSpeed-ParticleMinSpeed)

		b.Position = pos
		b.Velocity = geom.V(
			speed*math.Sin(phi)*math.Cos(theta),
			speed*math.Sin(phi)*math.Sin(theta),
			speed*math.Cos(phi),
		)
		b.Life = ParticleLife
		b.MaxLife = ParticleLife
		spawned++
	}
	return spawned
}
