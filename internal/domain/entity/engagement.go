package entity

import "time"

// EngagementType 互动事件类型
type EngagementType string

const (
	EngagementViewed  EngagementType = "story.viewed"
	EngagementLiked   EngagementType = "story.liked"
	EngagementUnliked EngagementType = "story.unliked"
)

// EngagementEvent 浏览/点赞事件
type EngagementEvent struct {
	Type       EngagementType `json:"type"`
	StoryID    string         `json:"story_id"`
	Delta      int            `json:"delta"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewEngagementEvent 创建互动事件
func NewEngagementEvent(t EngagementType, storyID string, delta int) *EngagementEvent {
	return &EngagementEvent{
		Type:       t,
		StoryID:    storyID,
		Delta:      delta,
		OccurredAt: time.Now(),
	}
}

// TrendingScore 故事热度分
type TrendingScore struct {
	StoryID string  `json:"story_id"`
	Score   float64 `json:"score"`
}
