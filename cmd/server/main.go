// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacl-coder/StarRunner-Server/config"
	"github.com/jacl-coder/StarRunner-Server/internal/game"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/pkg/db"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init(cfg.Server.LogLevel, cfg.Server.Debug)
	log := logger.L()

	var opts []game.Option

	// 初始化数据库连接
	if cfg.Database.Enabled {
		conn, err := db.InitPostgres(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化PostgreSQL失败")
		}
		defer db.Close()
		opts = append(opts, game.WithRunStore(models.NewRunRepository(conn)))
	} else {
		log.Info().Msg("未启用PostgreSQL，不保存对局记录")
	}

	// 初始化Redis连接
	if cfg.Redis.Enabled {
		client, err := db.InitRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化Redis失败")
		}
		defer db.CloseRedis()
		board := models.NewRunLeaderboard(client)
		opts = append(opts, game.WithLeaderboard(board), game.WithRunCache(board))
	} else {
		log.Info().Msg("未启用Redis，不更新排行榜")
	}

	server, err := game.NewServer(&cfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("创建游戏服务器失败")
	}

	// 等待中断信号
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("游戏服务器异常退出")
		return
	}
	log.Info().Msg("服务器已安全关闭")
}
