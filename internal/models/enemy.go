// enemy.go

package models

import "github.com/jacl-coder/StarRunner-Server/pkg/geom"

// EnemyKind 敌人种类
type EnemyKind string

const (
	// EnemyBasic 基础敌人
	EnemyBasic EnemyKind = "basic"
	// EnemyFast 快速蛇形敌人
	EnemyFast EnemyKind = "fast"
	// EnemyTank 重甲敌人
	EnemyTank EnemyKind = "tank"
	// EnemySwarmer 游走敌人
	EnemySwarmer EnemyKind = "swarmer"
	// EnemyShooter 射击敌人
	EnemyShooter EnemyKind = "shooter"
	// EnemyChaser 追踪敌人
	EnemyChaser EnemyKind = "chaser"
	// EnemyBoss 首领
	EnemyBoss EnemyKind = "boss"
)

// EnemyConfig 敌人配置
type EnemyConfig struct {
	Health     int     `json:"health"`
	Speed      float64 `json:"speed"`
	ScoreValue int     `json:"score_value"`
	Size       float64 `json:"size"`  // 渲染尺寸，同时决定包围盒
	Color      uint32  `json:"color"` // 仅供渲染端使用
}

// Extent 由尺寸推导包围盒半尺寸
func (c EnemyConfig) Extent() geom.Vec3 {
	return geom.V(c.Size, 0.6*c.Size, c.Size)
}

// EnemyConfigs 各种敌人的配置表
var EnemyConfigs = map[EnemyKind]EnemyConfig{
	EnemyBasic:   {Health: 1, Speed: 1.0, ScoreValue: 100, Size: 0.7, Color: 0xff0000},
	EnemyFast:    {Health: 1, Speed: 1.5, ScoreValue: 150, Size: 0.56, Color: 0xff4400},
	EnemyTank:    {Health: 3, Speed: 0.7, ScoreValue: 300, Size: 0.91, Color: 0x880000},
	EnemySwarmer: {Health: 1, Speed: 1.2, ScoreValue: 120, Size: 0.42, Color: 0xff0088},
	EnemyShooter: {Health: 2, Speed: 0.9, ScoreValue: 200, Size: 0.7, Color: 0xff8800},
	EnemyChaser:  {Health: 1, Speed: 1.1, ScoreValue: 180, Size: 0.7, Color: 0x00ff00},
	EnemyBoss:    {Health: 15, Speed: 0.5, ScoreValue: 1000, Size: 1.4, Color: 0xff0088},
}

// BossExtent 首领包围盒半尺寸，翼展比普通敌人宽得多
var BossExtent = geom.V(2.8, 1.7, 2.1)

// ConfigFor 获取敌人配置，未知种类退回基础敌人
func ConfigFor(kind EnemyKind) EnemyConfig {
	if cfg, ok := EnemyConfigs[kind]; ok {
		return cfg
	}
	return EnemyConfigs[EnemyBasic]
}

// ParseEnemyKind 解析敌人种类，未知种类退回基础敌人
func ParseEnemyKind(s string) EnemyKind {
	kind := EnemyKind(s)
	if _, ok := EnemyConfigs[kind]; ok {
		return kind
	}
	return EnemyBasic
}

// Weighted 带权重的候选项
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// EnemySpawnTable 敌人生成权重表
var EnemySpawnTable = []Weighted[EnemyKind]{
	{Value: EnemyBasic, Weight: 0.35},
	{Value: EnemyFast, Weight: 0.25},
	{Value: EnemyTank, Weight: 0.15},
	{Value: EnemySwarmer, Weight: 0.12},
	{Value: EnemyShooter, Weight: 0.08},
	{Value: EnemyChaser, Weight: 0.05},
}

// Pick 按累积概率从权重表中抽取，r 取值 [0,1)，落空时返回 fallback
func Pick[T any](table []Weighted[T], r float64, fallback T) T {
	cumulative := 0.0
	for _, w := range table {
		cumulative += w.Weight
		if r < cumulative {
			return w.Value
		}
	}
	return fallback
}
