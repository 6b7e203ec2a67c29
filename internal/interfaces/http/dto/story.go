package dto

import (
	"time"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/domain/entity"
)

// CreateStoryRequest 创建故事请求
type CreateStoryRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Description  string   `json:"description" binding:"required,max=5000"`
	Author       string   `json:"author" binding:"required,max=128"`
	Genre        string   `json:"genre" binding:"required"`
	Fandom       string   `json:"fandom" binding:"required,max=128"`
	WordCount    int      `json:"word_count" binding:"gte=0"`
	ChapterCount int      `json:"chapter_count" binding:"gte=0"`
	IsComplete   bool     `json:"is_complete"`
	CoverImage   string   `json:"cover_image" binding:"omitempty,url"`
	Tags         []string `json:"tags" binding:"omitempty,max=32,dive,max=64"`
}

// ToInput 转换为创建参数
func (r *CreateStoryRequest) ToInput() catalog.CreateStoryInput {
	return catalog.CreateStoryInput{
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		Genre:        entity.Genre(r.Genre),
		Fandom:       r.Fandom,
		WordCount:    r.WordCount,
		ChapterCount: r.ChapterCount,
		IsComplete:   r.IsComplete,
		CoverImage:   r.CoverImage,
		Tags:         r.Tags,
	}
}

// StoryResponse 故事响应
type StoryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Genre        string    `json:"genre"`
	Fandom       string    `json:"fandom"`
	WordCount    int       `json:"word_count"`
	ChapterCount int       `json:"chapter_count"`
	IsComplete   bool      `json:"is_complete"`
	LastUpdated  time.Time `json:"last_updated"`
	Likes        int       `json:"likes"`
	Views        int       `json:"views"`
	CoverImage   string    `json:"cover_image"`
	Tags         []string  `json:"tags"`
}

// ToStoryResponse 转换为故事响应
func ToStoryResponse(s *entity.Story) *StoryResponse {
	if s == nil {
		return nil
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return &StoryResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Author:       s.Author,
		Genre:        string(s.Genre),
		Fandom:       s.Fandom,
		WordCount:    s.WordCount,
		ChapterCount: s.ChapterCount,
		IsComplete:   s.IsComplete,
		LastUpdated:  s.LastUpdated,
		Likes:        s.Likes,
		Views:        s.Views,
		CoverImage:   s.CoverImage,
		Tags:         tags,
	}
}

// ToStoryListResponse 转换为故事列表响应
func ToStoryListResponse(stories []*entity.Story) []*StoryResponse {
	out := make([]*StoryResponse, 0, len(stories))
	for _, s := range stories {
		out = append(out, ToStoryResponse(s))
	}
	return out
}

// MessageResponse 仅含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}
