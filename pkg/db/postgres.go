package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jacl-coder/StarRunner-Server/config"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
	_ "github.com/lib/pq"
)

var (
	// DB 全局数据库连接实例
	DB *sql.DB
)

// InitPostgres 初始化PostgreSQL连接
func InitPostgres(cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("数据库Ping失败: %w", err)
	}

	DB = conn
	logger.L().Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("成功连接到PostgreSQL数据库")
	return conn, nil
}

// InitSchema 创建所有表
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, CreateAllTablesSQL); err != nil {
		return fmt.Errorf("创建表失败: %w", err)
	}
	return nil
}

// DropSchema 删除所有表
func DropSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, DropAllTablesSQL); err != nil {
		return fmt.Errorf("删除表失败: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
		logger.L().Info().Msg("数据库连接已关闭")
	}
}
