package ledger

import "math"

// ComboTimeout 连击超时(秒)
const ComboTimeout = 3.0

// MaxComboMultiplier 连击倍率上限
const MaxComboMultiplier = 3.0

// ComboMultiplier 连击数对应的倍率
func ComboMultiplier(k int) float64 {
	switch {
	case k <= 0:
		return 1.0
	case k < 5:
		return 1.0 + 0.1*float64(k)
	case k < 10:
		return 1.5 + 0.1*float64(k-5)
	default:
		return math.Min(2.0+0.05*float64(k-10), MaxComboMultiplier)
	}
}

// ComboChange 连击变化通知
type ComboChange struct {
	Count      int     `json:"count"`
	Multiplier float64 `json:"multiplier"`
}

// Combo 连击账本
type Combo struct {
	count     int
	max       int
	sinceKill float64
	timeout   float64
}

// NewCombo 创建连击账本
func NewCombo() *Combo {
	return &Combo{timeout: ComboTimeout}
}

// AddKill 记录一次击杀并重置衰减计时
func (c *Combo) AddKill() ComboChange {
	c.count++
	c.max = max(c.max, c.count)
	c.sinceKill = 0
	return c.change()
}

// Tick 推进衰减计时，连击因超时清零时返回 true
func (c *Combo) Tick(dt float64) (ComboChange, bool) {
	if c.count == 0 {
		return ComboChange{}, false
	}
	c.sinceKill += dt
	if c.sinceKill >= c.timeout {
		c.count = 0
		c.sinceKill = 0
		return c.change(), true
	}
	return ComboChange{}, false
}

// Count 当前连击数
func (c *Combo) Count() int {
	return c.count
}

// Max 本局最高连击
func (c *Combo) Max() int {
	return c.max
}

// SinceLastKill 距上次击杀的时间
func (c *Combo) SinceLastKill() float64 {
	return c.sinceKill
}

// Multiplier 当前倍率
func (c *Combo) Multiplier() float64 {
	return ComboMultiplier(c.count)
}

// Reset 清零连击，最高连击一并清零
func (c *Combo) Reset() ComboChange {
	c.count = 0
	c.max = 0
	c.sinceKill = 0
	return c.change()
}

func (c *Combo) change() ComboChange {
	return ComboChange{Count: c.count, Multiplier: c.Multiplier()}
}
