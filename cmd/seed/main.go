package main

import (
	"flag"
	"os"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
)

func main() {
	withAccounts := flag.Bool("accounts", true, "同时写入演示账号")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seeded, err := models.SeedCatalog(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	if seeded {
		logger.Infow("seed_catalog_done")
	} else {
		logger.Infow("seed_catalog_skipped", "reason", "catalog not empty")
	}

	if *withAccounts {
		accounts := models.DefaultDemoAccounts(os.Getenv("JB_DEMO_PASSWORD"))
		if err := models.InitDemoAccounts(models.DB, accounts, cfg.Auth.BcryptCost); err != nil {
			stdLog.Fatalf("Failed to seed demo accounts: %v", err)
		}
		logger.Infow("seed_demo_accounts_done", "count", len(accounts))
	}
}
