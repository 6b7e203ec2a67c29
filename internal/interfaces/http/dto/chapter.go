package dto

import (
	"time"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/domain/entity"
)

// CreateChapterRequest 创建章节请求
type CreateChapterRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Content       string `json:"content" binding:"required"`
	ChapterNumber int    `json:"chapter_number" binding:"required,gte=1"`
	WordCount     int    `json:"word_count" binding:"gte=0"`
}

// ToInput 转换为创建参数
func (r *CreateChapterRequest) ToInput(storyID string) catalog.CreateChapterInput {
	return catalog.CreateChapterInput{
		StoryID:       storyID,
		Title:         r.Title,
		Content:       r.Content,
		ChapterNumber: r.ChapterNumber,
		WordCount:     r.WordCount,
	}
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"story_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ChapterNumber int       `json:"chapter_number"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToChapterResponse 转换为章节响应
func ToChapterResponse(c *entity.Chapter) *ChapterResponse {
	if c == nil {
		return nil
	}
	return &ChapterResponse{
		ID:            c.ID,
		StoryID:       c.StoryID,
		Title:         c.Title,
		Content:       c.Content,
		ChapterNumber: c.ChapterNumber,
		WordCount:     c.WordCount,
		CreatedAt:     c.CreatedAt,
	}
}

// ToChapterListResponse 转换为章节列表响应
func ToChapterListResponse(chapters []*entity.Chapter) []*ChapterResponse {
	out := make([]*ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, ToChapterResponse(c))
	}
	return out
}
