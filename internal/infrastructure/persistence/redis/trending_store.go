package redis

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
)

// TrendingKey 热度榜有序集合键
const TrendingKey = "trending:stories"

// TrendingStore 基于有序集合的热度榜
type TrendingStore struct {
	client *Client
	key    string
}

// NewTrendingStore 创建热度榜存储
func NewTrendingStore(client *Client) *TrendingStore {
	return &TrendingStore{client: client, key: TrendingKey}
}

// Add 累加热度分
func (s *TrendingStore) Add(ctx context.Context, storyID string, delta float64) error {
	ctx, span := tracer.Start(ctx, "redis.TrendingStore.Add")
	defer span.End()
	span.SetAttributes(attribute.String("story.id", storyID), attribute.Float64("trending.delta", delta))

	if err := s.client.rdb.ZIncrBy(ctx, s.key, delta, storyID).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update trending score: %w", err)
	}
	return nil
}

// Top 返回分数最高的 n 个故事
func (s *TrendingStore) Top(ctx context.Context, n int) ([]entity.TrendingScore, error) {
	ctx, span := tracer.Start(ctx, "redis.TrendingStore.Top")
	defer span.End()

	if n <= 0 {
		return []entity.TrendingScore{}, nil
	}
	zs, err := s.client.rdb.ZRevRangeWithScores(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read trending scores: %w", err)
	}

	out := make([]entity.TrendingScore, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, entity.TrendingScore{StoryID: id, Score: z.Score})
	}
	return out, nil
}

var _ repository.TrendingRepository = (*TrendingStore)(nil)
