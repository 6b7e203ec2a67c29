package repository

import (
	"context"

	"fiction-catalog-api/internal/domain/entity"
)

// TrendingRepository 热度榜存储接口
type TrendingRepository interface {
	// Add 为故事累加热度分（可为负）
	Add(ctx context.Context, storyID string, delta float64) error

	// Top 返回热度最高的 n 个故事，分数降序
	Top(ctx context.Context, n int) ([]entity.TrendingScore, error)
}
