// config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 STARRUNNER_SERVER_GAME_PORT
const EnvPrefix = "STARRUNNER"

// Config 服务器配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort           int           `mapstructure:"game_port"`
	Debug              bool          `mapstructure:"debug"`
	LogLevel           string        `mapstructure:"log_level"`
	TickRate           int           `mapstructure:"tick_rate"`            // 每秒模拟帧数
	MaxSessions        int           `mapstructure:"max_sessions"`         // 同时在线的会话上限
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"` // 无输入超过该时长的会话会被回收
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 会话令牌配置
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

// SimulationConfig 模拟参数，默认值即原版手感
type SimulationConfig struct {
	Seed            int64   `mapstructure:"seed"` // 0 表示每局随机
	PlayerShots     int     `mapstructure:"player_shots"`
	EnemyShots      int     `mapstructure:"enemy_shots"`
	Particles       int     `mapstructure:"particles"`
	PlayerHealth    int     `mapstructure:"player_health"`
	SpawnDistance   float64 `mapstructure:"spawn_distance"`
	RemoveDistance  float64 `mapstructure:"remove_distance"`
	EnemyInterval   float64 `mapstructure:"enemy_interval"`
	StarChance      float64 `mapstructure:"star_chance"`
	PowerUpInterval float64 `mapstructure:"powerup_interval"`
	BossScoreStep   int     `mapstructure:"boss_score_step"`
	HitRadius       float64 `mapstructure:"hit_radius"`
	MagnetRadius    float64 `mapstructure:"magnet_radius"`
	MagnetStrength  float64 `mapstructure:"magnet_strength"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig Config
)

// setDefaults 注册默认值，同时让 AutomaticEnv 能识别所有键
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.game_port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.max_sessions", 500)
	v.SetDefault("server.session_idle_timeout", 2*time.Minute)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "starrunner")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.issuer", "starrunner")

	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.player_shots", 20)
	v.SetDefault("simulation.enemy_shots", 30)
	v.SetDefault("simulation.particles", 200)
	v.SetDefault("simulation.player_health", 3)
	v.SetDefault("simulation.spawn_distance", 100.0)
	v.SetDefault("simulation.remove_distance", 20.0)
	v.SetDefault("simulation.enemy_interval", 1.0)
	v.SetDefault("simulation.star_chance", 0.3)
	v.SetDefault("simulation.powerup_interval", 8.0)
	v.SetDefault("simulation.boss_score_step", 10000)
	v.SetDefault("simulation.hit_radius", 2.0)
	v.SetDefault("simulation.magnet_radius", 15.0)
	v.SetDefault("simulation.magnet_strength", 25.0)
}

// Load 读取配置文件并叠加环境变量，configPath 为空时只使用默认值
func Load(configPath string) (*Config, error) {
	// .env 不存在不算错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("无法加载 .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig 从文件加载配置到 GlobalConfig
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("server.tick_rate 必须为正数: %d", c.Server.TickRate)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("server.max_sessions 必须为正数: %d", c.Server.MaxSessions)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl 必须为正数: %s", c.Auth.TokenTTL)
	}
	return c.Simulation.Validate()
}

// Validate 校验模拟参数
func (s *SimulationConfig) Validate() error {
	positiveInts := map[string]int{
		"player_shots":    s.PlayerShots,
		"enemy_shots":     s.EnemyShots,
		"particles":       s.Particles,
		"player_health":   s.PlayerHealth,
		"boss_score_step": s.BossScoreStep,
	}
	for key, val := range positiveInts {
		if val <= 0 {
			return fmt.Errorf("simulation.%s 必须为正数: %d", key, val)
		}
	}

	positiveFloats := map[string]float64{
		"spawn_distance":   s.SpawnDistance,
		"remove_distance":  s.RemoveDistance,
		"enemy_interval":   s.EnemyInterval,
		"powerup_interval": s.PowerUpInterval,
		"hit_radius":       s.HitRadius,
		"magnet_radius":    s.MagnetRadius,
	}
	for key, val := range positiveFloats {
		if val <= 0 {
			return fmt.Errorf("simulation.%s 必须为正数: %g", key, val)
		}
	}

	if s.StarChance < 0 || s.StarChance > 1 {
		return fmt.Errorf("simulation.star_chance 必须在 [0,1] 之间: %g", s.StarChance)
	}
	return nil
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TickInterval 每帧间隔
func (c *ServerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
