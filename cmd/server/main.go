package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/jewelbridge/internal/app"
	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.SessionJWT.SecretKey) {
			stdLog.Fatalf("会话令牌密钥过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.SessionJWT.SecretKey) {
		stdLog.Printf("警告: 会话令牌密钥过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化目录数据
	if cfg.Catalog.SeedOnStart {
		if _, err := models.SeedCatalog(models.DB); err != nil {
			stdLog.Fatalf("目录数据初始化失败: %v", err)
		}
	}

	// 目录认证模式下初始化演示账号
	if strings.EqualFold(cfg.Auth.Provider, constants.AuthProviderDirectory) {
		demoPassword := os.Getenv("JB_DEMO_PASSWORD")
		if cfg.Server.Mode == "release" && demoPassword == "" {
			stdLog.Printf("警告: 未设置 JB_DEMO_PASSWORD，已跳过演示账号初始化")
		} else if err := models.InitDemoAccounts(models.DB, models.DefaultDemoAccounts(demoPassword), cfg.Auth.BcryptCost); err != nil {
			stdLog.Printf("警告: 初始化演示账号失败: %v", err)
		}
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	runMode, err := app.ParseMode(mode)
	if err != nil {
		stdLog.Fatalf("启动模式无效: %v", err)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    runMode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiYellow + ansiBold + "JewelBridge API" + ansiReset)
	fmt.Println(ansiCyan + "Local jewellery marketplace: catalog, cart and Visit & Hold" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
