// pool.go

package pool

import (
	"math"

	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// Body 池中的一个槽位，槽位在池创建后复用，不会单独分配或释放
type Body struct {
	Index    int       `json:"index"`
	Position geom.Vec3 `json:"position"`
	Velocity geom.Vec3 `json:"velocity"`
	Life     float64   `json:"life"`
	MaxLife  float64   `json:"max_life"`
	Active   bool      `json:"active"`
}

// LifeRatio 剩余寿命比例
func (b *Body) LifeRatio() float64 {
	if b.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, b.Life/b.MaxLife)
}

// Options 对象池参数
type Options struct {
	Name     string
	Capacity int
	Extent   geom.Vec3 // 槽位包围盒半尺寸

	// CullBehind 落后玩家超过该距离即回收，0 表示不按距离回收
	CullBehind float64

	// Drag 按 60Hz 计的每帧速度保留比例，0 或 1 表示无阻尼
	Drag float64
}

// Pool 固定容量的对象池
type Pool struct {
	opts    Options
	slots   []Body
	active  int
	dropped uint64
}

// New 创建对象池，容量在运行期间不会改变
func New(opts Options) *Pool {
	if opts.Capacity < 0 {
		opts.Capacity = 0
	}
	slots := make([]Body, opts.Capacity)
	for i := range slots {
		slots[i].Index = i
	}
	return &Pool{opts: opts, slots: slots}
}

// Name 池名称
func (p *Pool) Name() string {
	return p.opts.Name
}

// Cap 池容量
func (p *Pool) Cap() int {
	return len(p.slots)
}

// ActiveCount 活跃槽位数量
func (p *Pool) ActiveCount() int {
	return p.active
}

// Dropped 因池满而被丢弃的请求数
func (p *Pool) Dropped() uint64 {
	return p.dropped
}

// Acquire 取出第一个空闲槽位并重置其瞬时字段，池满时返回 false
func (p *Pool) Acquire() (*Body, bool) {
	for i := range p.slots {
		b := &p.slots[i]
		if b.Active {
			continue
		}
		b.Position = geom.Vec3{}
		b.Velocity = geom.Vec3{}
		b.Life = 0
		b.MaxLife = 0
		b.Active = true
		p.active++
		return b, true
	}
	p.dropped++
	return nil, false
}

// Release 归还槽位，非本池槽位或已空闲的槽位直接忽略
func (p *Pool) Release(b *Body) {
	if !p.owns(b) || !b.Active {
		return
	}
	b.Active = false
	p.active--
}

// Tick 推进所有活跃槽位，寿命耗尽或落后玩家过远的槽位自动归还，返回归还数量
func (p *Pool) Tick(dt, playerZ float64) int {
	released := 0
	keep := 1.0
	if p.opts.Drag > 0 && p.opts.Drag < 1 {
		keep = math.Pow(p.opts.Drag, dt*60)
	}

	for i := range p.slots {
		b := &p.slots[i]
		if !b.Active {
			continue
		}

		b.Life -= dt
		if b.Life <= 0 {
			p.Release(b)
			released++
			continue
		}

		b.Position = b.Position.AddScaled(b.Velocity, dt)
		if keep != 1 {
			b.Velocity = b.Velocity.Scale(keep)
		}

		if p.opts.CullBehind > 0 && b.Position.Z > playerZ+p.opts.CullBehind {
			p.Release(b)
			released++
		}
	}
	return released
}

// Each 遍历活跃槽位，fn 返回 false 时停止
func (p *Pool) Each(fn func(b *Body) bool) {
	for i := range p.slots {
		b := &p.slots[i]
		if !b.Active {
			continue
		}
		if !fn(b) {
			return
		}
	}
}

// Bounds 槽位包围盒
func (p *Pool) Bounds(b *Body) geom.AABB {
	return geom.BoxAt(b.Position, p.opts.Extent)
}

// Reset 回收全部槽位
func (p *Pool) Reset() {
	for i := range p.slots {
		p.slots[i].Active = false
	}
	p.active = 0
	p.dropped = 0
}

func (p *Pool) owns(b *Body) bool {
	if b == nil || b.Index < 0 || b.Index >= len(p.slots) {
		return false
	}
	return &p.slots[b.Index] == b
}
