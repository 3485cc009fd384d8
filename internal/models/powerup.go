// powerup.go

package models

// PowerUpKind 强化道具种类
type PowerUpKind string

const (
	PowerUpShield          PowerUpKind = "shield"
	PowerUpRapidFire       PowerUpKind = "rapid_fire"
	PowerUpMultiShot       PowerUpKind = "multi_shot"
	PowerUpSpeedBoost      PowerUpKind = "speed_boost"
	PowerUpMagnet          PowerUpKind = "magnet"
	PowerUpScoreMultiplier PowerUpKind = "score_multiplier"
	PowerUpHealth          PowerUpKind = "health"
)

// EffectKind 增益效果种类
type EffectKind string

const (
	EffectShield          EffectKind = "shield"
	EffectRapidFire       EffectKind = "rapid_fire"
	EffectMultiShot       EffectKind = "multi_shot"
	EffectSpeedBoost      EffectKind = "speed_boost"
	EffectMagnet          EffectKind = "magnet"
	EffectScoreMultiplier EffectKind = "score_multiplier"
)

// EffectKinds 所有合法的效果种类
var EffectKinds = []EffectKind{
	EffectShield,
	EffectRapidFire,
	EffectMultiShot,
	EffectSpeedBoost,
	EffectMagnet,
	EffectScoreMultiplier,
}

// Valid 是否为已知效果
func (k EffectKind) Valid() bool {
	for _, known := range EffectKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PowerUpConfig 道具配置
type PowerUpConfig struct {
	Duration float64 `json:"duration"` // 效果持续时间(秒)，生命道具为0
	Color    uint32  `json:"color"`
}

// PowerUpConfigs 道具配置表
var PowerUpConfigs = map[PowerUpKind]PowerUpConfig{
	PowerUpShield:          {Duration: 10.0, Color: 0x0088ff},
	PowerUpRapidFire:       {Duration: 8.0, Color: 0xff0088},
	PowerUpMultiShot:       {Duration: 10.0, Color: 0x00ff88},
	PowerUpSpeedBoost:      {Duration: 6.0, Color: 0xffff00},
	PowerUpMagnet:          {Duration: 12.0, Color: 0xff8800},
	PowerUpScoreMultiplier: {Duration: 15.0, Color: 0x8800ff},
	PowerUpHealth:          {Duration: 0, Color: 0x00ff00},
}

// PowerUpSpawnTable 道具生成权重表
var PowerUpSpawnTable = []Weighted[PowerUpKind]{
	{Value: PowerUpShield, Weight: 0.2},
	{Value: PowerUpRapidFire, Weight: 0.2},
	{Value: PowerUpMultiShot, Weight: 0.15},
	{Value: PowerUpSpeedBoost, Weight: 0.15},
	{Value: PowerUpMagnet, Weight: 0.1},
	{Value: PowerUpScoreMultiplier, Weight: 0.15},
	{Value: PowerUpHealth, Weight: 0.05},
}

// EffectKind 道具对应的效果，生命道具和未知道具返回 false
func (k PowerUpKind) EffectKind() (EffectKind, bool) {
	switch k {
	case PowerUpShield:
		return EffectShield, true
	case PowerUpRapidFire:
		return EffectRapidFire, true
	case PowerUpMultiShot:
		return EffectMultiShot, true
	case PowerUpSpeedBoost:
		return EffectSpeedBoost, true
	case PowerUpMagnet:
		return EffectMagnet, true
	case PowerUpScoreMultiplier:
		return EffectScoreMultiplier, true
	default:
		return "", false
	}
}

// Config 获取道具配置，未知道具按护盾处理
func (k PowerUpKind) Config() PowerUpConfig {
	if cfg, ok := PowerUpConfigs[k]; ok {
		return cfg
	}
	return PowerUpConfigs[PowerUpShield]
}
