package ledger

// Health 生命值账本，保证 0 <= current <= max
type Health struct {
	current int
	max     int
}

// NewHealth 创建满血的生命值账本
func NewHealth(maxHP int) *Health {
	if maxHP < 1 {
		maxHP = 1
	}
	return &Health{current: maxHP, max: maxHP}
}

// Current 当前生命值
func (h *Health) Current() int {
	return h.current
}

// Max 最大生命值
func (h *Health) Max() int {
	return h.max
}

// Ratio 生命值比例
func (h *Health) Ratio() float64 {
	return float64(h.current) / float64(h.max)
}

// Alive 是否存活
func (h *Health) Alive() bool {
	return h.current > 0
}

// TakeDamage 扣血，仅在本次调用导致死亡时返回 true，死亡后的调用一律忽略
func (h *Health) TakeDamage(amount int) bool {
	if h.current <= 0 || amount <= 0 {
		return false
	}
	h.current = max(0, h.current-amount)
	return h.current == 0
}

// Heal 回血，不超过上限，已死亡时无效
func (h *Health) Heal(amount int) {
	if h.current <= 0 || amount <= 0 {
		return
	}
	h.current = min(h.max, h.current+amount)
}

// SetMax 修改上限，当前值随之截断
func (h *Health) SetMax(maxHP int) {
	if maxHP < 1 {
		maxHP = 1
	}
	h.max = maxHP
	h.current = min(h.current, h.max)
}

// Reset 回满
func (h *Health) Reset() {
	h.current = h.max
}
