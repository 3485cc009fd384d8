package pool

import "github.com/jacl-coder/StarRunner-Server/pkg/geom"

// Forward 玩家前进方向
var Forward = geom.V(0, 0, -1)

// Launcher 从池中取槽位发射投射物
type Launcher struct {
	pool  *Pool
	Speed float64
	Life  float64
}

// NewLauncher 创建发射器
func NewLauncher(p *Pool, speed, life float64) *Launcher {
	return &Launcher{pool: p, Speed: speed, Life: life}
}

// Pool 发射器使用的对象池
func (l *Launcher) Pool() *Pool {
	return l.pool
}

// Fire 沿方向 dir 发射，池满时丢弃请求
func (l *Launcher) Fire(from, dir geom.Vec3) bool {
	b, ok := l.pool.Acquire()
	if !ok {
		return false
	}
	b.Position = from
	b.Velocity = dir.Normalize().Scale(l.Speed)
	b.Life = l.Life
	b.MaxLife = l.Life
	return true
}

// Shoot 从 from 瞄准 target 发射
func (l *Launcher) Shoot(from, target geom.Vec3) bool {
	return l.Fire(from, geom.Direction(from, target))
}
