package ledger

import "math"

// 得分参数
const (
	PassiveScorePerSecond = 10.0
	ScoreFlushInterval    = 0.1
)

// Score 得分累加器，只有 flush 时才更新对外可见的分数
type Score struct {
	pending   float64
	current   float64
	previous  int
	final     int
	lastFlush float64
}

// NewScore 创建得分累加器
func NewScore() *Score {
	return &Score{}
}

// Add 加入待结算分数
func (s *Score) Add(amount float64) {
	if amount <= 0 {
		return
	}
	s.pending += amount
}

// UpdateFromTime 累加被动得分，距上次结算满 0.1 秒时结算，返回可见分数是否变化
func (s *Score) UpdateFromTime(dt, now float64) bool {
	s.pending += dt * PassiveScorePerSecond

	if now-s.lastFlush < ScoreFlushInterval {
		return false
	}
	s.lastFlush = now
	if s.pending <= 0 {
		return false
	}
	s.current += s.pending
	s.pending = 0
	return true
}

// Current 对外可见的分数
func (s *Score) Current() int {
	return int(math.Floor(s.current))
}

// Pending 待结算分数
func (s *Score) Pending() float64 {
	return s.pending
}

// Previous 上一局分数
func (s *Score) Previous() int {
	return s.previous
}

// Final 本局最终分数
func (s *Score) Final() int {
	return s.final
}

// Finalize 结算剩余分数并记录最终分数
func (s *Score) Finalize() int {
	s.final = s.total()
	s.current = float64(s.final)
	s.pending = 0
	return s.final
}

// SaveAsPrevious 把当前总分记为上一局分数
func (s *Score) SaveAsPrevious() {
	s.previous = s.total()
}

// Reset 保存上一局分数后清零
func (s *Score) Reset() {
	s.SaveAsPrevious()
	s.current = 0
	s.pending = 0
	s.lastFlush = 0
}

// StartNew 开始新的一局，上一局分数保留
func (s *Score) StartNew() {
	s.current = 0
	s.final = 0
	s.pending = 0
	s.lastFlush = 0
}

func (s *Score) total() int {
	return int(math.Floor(s.current + s.pending))
}
