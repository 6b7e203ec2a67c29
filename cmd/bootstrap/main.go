package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"fiction-catalog-api/internal/config"
	"fiction-catalog-api/internal/wire"
	"fiction-catalog-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting catalog bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 建表
	if err := dataLayer.PgClient.AutoMigrate(ctx); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	fmt.Println("Schema migrated.")

	// 4. 写入示例数据（表非空时跳过）
	n, err := wire.SeedCatalog(ctx, cfg, &wire.Storage{
		Driver:   config.StorageDriverPostgres,
		Stories:  dataLayer.StoryRepo,
		Chapters: dataLayer.ChapterRepo,
		Tx:       dataLayer.TxManager,
		Health:   dataLayer.PgClient,
	})
	if err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	if n == 0 {
		fmt.Println("Catalog already contains stories, seed skipped.")
	} else {
		fmt.Printf("Seeded %d stories.\n", n)
	}

	fmt.Println("Bootstrap completed.")
}
