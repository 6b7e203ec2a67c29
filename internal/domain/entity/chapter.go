// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chapter 章节实体，创建后不可变
type Chapter struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"story_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ChapterNumber int       `json:"chapter_number"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewChapter 创建新章节
func NewChapter(storyID string, chapterNumber int, title, content string) *Chapter {
	return &Chapter{
		ID:            uuid.New().String(),
		StoryID:       storyID,
		Title:         title,
		Content:       content,
		ChapterNumber: chapterNumber,
		WordCount:     CountWords(content),
		CreatedAt:     time.Now(),
	}
}

// Clone 返回副本
func (c *Chapter) Clone() *Chapter {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CountWords 按空白分隔统计单词数
func CountWords(content string) int {
	return len(strings.Fields(content))
}
