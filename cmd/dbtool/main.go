// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jacl-coder/StarRunner-Server/config"
	"github.com/jacl-coder/StarRunner-Server/pkg/db"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: init, reset, drop, help")
	flag.Parse()

	// 显示帮助信息
	if *action == "help" {
		showHelp()
		return
	}

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig
	logger.Init(cfg.Server.LogLevel, true)
	log := logger.L()

	// 初始化数据库连接
	conn, err := db.InitPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化PostgreSQL失败")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 执行操作
	switch *action {
	case "init":
		err = db.InitSchema(ctx, conn)
	case "drop":
		log.Warn().Msg("正在删除所有表和数据")
		err = db.DropSchema(ctx, conn)
	case "reset":
		log.Warn().Msg("正在重置数据库，这将删除所有表和数据")
		if err = db.DropSchema(ctx, conn); err == nil {
			err = db.InitSchema(ctx, conn)
		}
	default:
		log.Fatal().Str("action", *action).Msg("未知操作")
	}

	if err != nil {
		log.Fatal().Err(err).Str("action", *action).Msg("操作失败")
	}
	log.Info().Str("action", *action).Msg("操作完成")
}

// showHelp 显示帮助信息
func showHelp() {
	fmt.Println("StarRunner 数据库管理工具")
	fmt.Println("")
	fmt.Println("用法:")
	fmt.Println("  go run ./cmd/dbtool -action=<操作> [-config=<配置文件>]")
	fmt.Println("")
	fmt.Println("操作:")
	fmt.Println("  init   - 初始化数据库（创建表结构）")
	fmt.Println("  drop   - 删除所有表和数据")
	fmt.Println("  reset  - 删除后重新创建表结构")
	fmt.Println("  help   - 显示此帮助信息")
}
