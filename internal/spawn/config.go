package spawn

// Config 生成调度参数
type Config struct {
	SpawnDistance   float64 // 在玩家前方多远处生成
	RemoveDistance  float64 // 落在玩家身后多远时移除
	EnemyInterval   float64 // 敌人/星星生成间隔
	StarChance      float64 // 每次生成为星星的概率
	PowerUpInterval float64
	BossScoreStep   int // 每隔多少分出现一次首领
	LateralRange    float64
	MinHeight       float64
	MaxHeight       float64
	HitRadius       float64 // 玩家子弹命中普通敌人的距离阈值

	MagnetRadius      float64
	MagnetMinDistance float64
	MagnetStrength    float64
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		SpawnDistance:     100,
		RemoveDistance:    20,
		EnemyInterval:     1.0,
		StarChance:        0.3,
		PowerUpInterval:   8.0,
		BossScoreStep:     10000,
		LateralRange:      10,
		MinHeight:         1,
		MaxHeight:         9,
		HitRadius:         2.0,
		MagnetRadius:      15,
		MagnetMinDistance: 0.5,
		MagnetStrength:    25,
	}
}
