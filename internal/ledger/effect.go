// effect.go

package ledger

import (
	"math"
	"sort"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
)

// 效果倍率
const (
	RapidFireCooldownMultiplier = 0.3
	SpeedBoostMultiplier        = 1.5
	ScoreBoostMultiplier        = 2.0
)

// Effect 一个计时增益
type Effect struct {
	Kind      models.EffectKind `json:"kind"`
	Duration  float64           `json:"duration"`
	Remaining float64           `json:"remaining"`
	Active    bool              `json:"active"`
}

// Progress 剩余时间占总时长的比例
func (e Effect) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return math.Max(0, e.Remaining/e.Duration)
}

// EffectLedger 单个角色的增益账本，每种效果最多一个
type EffectLedger struct {
	effects map[models.EffectKind]*Effect
}

// NewEffectLedger 创建增益账本
func NewEffectLedger() *EffectLedger {
	return &EffectLedger{effects: make(map[models.EffectKind]*Effect)}
}

// Add 添加效果，已存在时同时延长剩余时间和总时长，返回是否生效
func (l *EffectLedger) Add(kind models.EffectKind, duration float64) bool {
	if !kind.Valid() || duration <= 0 {
		return false
	}

	if existing, ok := l.effects[kind]; ok && existing.Active {
		existing.Remaining += duration
		existing.Duration += duration
		return true
	}

	l.effects[kind] = &Effect{
		Kind:      kind,
		Duration:  duration,
		Remaining: duration,
		Active:    true,
	}
	return true
}

// Tick 推进计时，返回本次到期的效果
func (l *EffectLedger) Tick(dt float64) []models.EffectKind {
	var expired []models.EffectKind
	for kind, effect := range l.effects {
		effect.Remaining -= dt
		if effect.Remaining <= 0 {
			effect.Active = false
			delete(l.effects, kind)
			expired = append(expired, kind)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Has 效果是否生效
func (l *EffectLedger) Has(kind models.EffectKind) bool {
	effect, ok := l.effects[kind]
	return ok && effect.Active
}

// Get 获取效果副本
func (l *EffectLedger) Get(kind models.EffectKind) (Effect, bool) {
	effect, ok := l.effects[kind]
	if !ok || !effect.Active {
		return Effect{}, false
	}
	return *effect, true
}

// Active 所有生效中的效果，按种类排序
func (l *EffectLedger) Active() []Effect {
	list := make([]Effect, 0, len(l.effects))
	for _, effect := range l.effects {
		if effect.Active {
			list = append(list, *effect)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Kind < list[j].Kind })
	return list
}

// Clear 一次性移除全部效果
func (l *EffectLedger) Clear() {
	clear(l.effects)
}

// Reset 同 Clear
func (l *EffectLedger) Reset() {
	l.Clear()
}

// ShootCooldownMultiplier 射击冷却倍率
func (l *EffectLedger) ShootCooldownMultiplier() float64 {
	if l.Has(models.EffectRapidFire) {
		return RapidFireCooldownMultiplier
	}
	return 1.0
}

// SpeedMultiplier 速度倍率
func (l *EffectLedger) SpeedMultiplier() float64 {
	if l.Has(models.EffectSpeedBoost) {
		return SpeedBoostMultiplier
	}
	return 1.0
}

// ScoreMultiplier 得分倍率
func (l *EffectLedger) ScoreMultiplier() float64 {
	if l.Has(models.EffectScoreMultiplier) {
		return ScoreBoostMultiplier
	}
	return 1.0
}

// HasShield 是否有护盾
func (l *EffectLedger) HasShield() bool {
	return l.Has(models.EffectShield)
}

// HasMagnet 是否有磁铁
func (l *EffectLedger) HasMagnet() bool {
	return l.Has(models.EffectMagnet)
}

// HasMultiShot 是否有散射
func (l *EffectLedger) HasMultiShot() bool {
	return l.Has(models.EffectMultiShot)
}
