// Package engagement 消费互动事件并维护故事热度榜
package engagement

import (
	"context"
	"fmt"

	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/domain/repository"
	"fiction-catalog-api/pkg/logger"
)

// 热度权重
const (
	ViewWeight = 1.0
	LikeWeight = 5.0
)

// Weight 返回事件对应的热度分变化
func Weight(event *entity.EngagementEvent) (float64, bool) {
	switch event.Type {
	case entity.EngagementViewed:
		return ViewWeight, true
	case entity.EngagementLiked:
		return LikeWeight, true
	case entity.EngagementUnliked:
		return -LikeWeight, true
	default:
		return 0, false
	}
}

// Processor 处理互动事件
type Processor struct {
	trending repository.TrendingRepository
}

// NewProcessor 创建事件处理器
func NewProcessor(trending repository.TrendingRepository) *Processor {
	return &Processor{trending: trending}
}

// Handle 按事件类型累加热度分，未知类型忽略
func (p *Processor) Handle(ctx context.Context, event *entity.EngagementEvent) error {
	if event.StoryID == "" {
		return fmt.Errorf("engagement event without story id")
	}
	delta, ok := Weight(event)
	if !ok {
		logger.Warn(ctx, "unknown engagement event type", "type", string(event.Type))
		return nil
	}
	return p.trending.Add(ctx, event.StoryID, delta)
}

// RankedStory 热度榜条目
type RankedStory struct {
	Story *entity.Story
	Score float64
}

// Ranker 读取热度榜并解析为故事
type Ranker struct {
	trending repository.TrendingRepository
	stories  repository.StoryRepository
}

// NewRanker 创建热度榜读取器
func NewRanker(trending repository.TrendingRepository, stories repository.StoryRepository) *Ranker {
	return &Ranker{trending: trending, stories: stories}
}

// Top 返回热度最高的故事，已不存在的故事被跳过
func (r *Ranker) Top(ctx context.Context, limit int) ([]RankedStory, error) {
	scores, err := r.trending.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]RankedStory, 0, len(scores))
	for _, sc := range scores {
		story, err := r.stories.Get(ctx, sc.StoryID)
		if err != nil {
			return nil, err
		}
		if story == nil {
			continue
		}
		out = append(out, RankedStory{Story: story, Score: sc.Score})
	}
	return out, nil
}
