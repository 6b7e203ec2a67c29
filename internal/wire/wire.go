//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"fiction-catalog-api/internal/config"
	"fiction-catalog-api/internal/infrastructure/persistence/postgres"
	"fiction-catalog-api/internal/interfaces/http/handler"
	"fiction-catalog-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		StorageSet,
		RedisSet,
		CatalogSet,
		HandlerSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeWorker 初始化互动事件消费者（用于 engagement-worker）
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, func(), error) {
	wire.Build(
		WorkerSet,
		wire.Struct(new(Worker), "*"),
	)
	return nil, nil, nil
}

// StorageSet 存储提供者集合
var StorageSet = wire.NewSet(
	ProvideStorage,
	ProvideChapterRepository,
)

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewStoryRepository,
	postgres.NewChapterRepository,
)

// RedisSet Redis 提供者集合（可选）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
)

// CatalogSet 目录应用层提供者集合
var CatalogSet = wire.NewSet(
	ProvideEngagementPublisher,
	ProvideCatalogService,
	ProvideRanker,
)

// HandlerSet 处理器提供者集合
var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewStoryHandler,
	handler.NewChapterHandler,
	handler.NewStatsHandler,
	ProvideHandlers,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideRateLimiter,
	ProvideRouter,
)

// WorkerSet 消费者提供者集合
var WorkerSet = wire.NewSet(
	ProvideRedisClient,
	ProvideEngagementProcessor,
	ProvideEngagementConsumer,
)
