package spawn

import (
	"github.com/jacl-coder/StarRunner-Server/internal/enemy"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// Hit 子弹命中结果
type Hit struct {
	Hit    bool
	Enemy  *enemy.Enemy
	Killed bool
}

// HitEnemyNear 距 pos 小于命中半径的第一个敌人受到伤害，击杀时当场移出列表
func (s *Scheduler) HitEnemyNear(pos geom.Vec3, damage int) Hit {
	for i, e := range s.enemies {
		if !e.Active || e.Position.Dist(pos) >= s.cfg.HitRadius {
			continue
		}
		killed := e.TakeDamage(damage)
		if killed {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
		}
		return Hit{Hit: true, Enemy: e, Killed: killed}
	}
	return Hit{}
}

// RamEnemies 摧毁并移出所有与 box 相交的敌人
func (s *Scheduler) RamEnemies(box geom.AABB) []*enemy.Enemy {
	var rammed []*enemy.Enemy
	s.enemies = compact(s.enemies, func(e *enemy.Enemy) bool {
		if e.Active && e.Bounds().Intersects(box) {
			e.Destroy()
			rammed = append(rammed, e)
			return false
		}
		return e.Active
	})
	return rammed
}

// CollectStars 移出所有与 box 相交的星星
func (s *Scheduler) CollectStars(box geom.AABB) []*Collectible {
	var collected []*Collectible
	s.stars = collect(s.stars, box, &collected)
	return collected
}

// CollectPowerUps 移出所有与 box 相交的道具
func (s *Scheduler) CollectPowerUps(box geom.AABB) []*Collectible {
	var collected []*Collectible
	s.powerUps = collect(s.powerUps, box, &collected)
	return collected
}

func collect(items []*Collectible, box geom.AABB, out *[]*Collectible) []*Collectible {
	return compact(items, func(c *Collectible) bool {
		if c.Active && c.Bounds().Intersects(box) {
			c.Deactivate()
			*out = append(*out, c)
			return false
		}
		return c.Active
	})
}

// RemoveEnemy 把敌人移出列表
func (s *Scheduler) RemoveEnemy(target *enemy.Enemy) bool {
	for i, e := range s.enemies {
		if e == target {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
			return true
		}
	}
	return false
}

// Boss 在场的首领，没有时返回 nil
func (s *Scheduler) Boss() *enemy.Enemy {
	if s.boss.status != BossActive || !s.boss.boss.Active {
		return nil
	}
	return s.boss.boss
}

// DamageBoss 对首领造成伤害，击杀时释放首领槽位
func (s *Scheduler) DamageBoss(amount int) (hit, killed bool) {
	boss := s.Boss()
	if boss == nil {
		return false, false
	}
	killed = boss.TakeDamage(amount)
	if killed {
		s.releaseBoss()
	}
	return true, killed
}

// BossStatus 首领槽位状态
func (s *Scheduler) BossStatus() BossStatus {
	return s.boss.status
}

// NextBossScore 下一个首领的分数阈值
func (s *Scheduler) NextBossScore() int {
	return s.boss.nextScore
}

// Enemies 当前敌人列表，调用方只读
func (s *Scheduler) Enemies() []*enemy.Enemy {
	return s.enemies
}

// Stars 当前星星列表，调用方只读
func (s *Scheduler) Stars() []*Collectible {
	return s.stars
}

// PowerUps 当前道具列表，调用方只读
func (s *Scheduler) PowerUps() []*Collectible {
	return s.powerUps
}

// ShotsFired 敌方累计开火次数
func (s *Scheduler) ShotsFired() int {
	return s.shotsFired
}
