// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Genre 故事类型（固定词表）
type Genre string

const (
	GenreRomance   Genre = "Romance"
	GenreFantasy   Genre = "Fantasy"
	GenreAdventure Genre = "Adventure"
	GenreMystery   Genre = "Mystery"
	GenreSciFi     Genre = "Sci-Fi"
	GenreDrama     Genre = "Drama"
)

// Genres 返回固定的类型词表（按展示顺序）
func Genres() []Genre {
	return []Genre{GenreRomance, GenreFantasy, GenreAdventure, GenreMystery, GenreSciFi, GenreDrama}
}

// IsValid 检查类型是否属于固定词表
func (g Genre) IsValid() bool {
	for _, known := range Genres() {
		if g == known {
			return true
		}
	}
	return false
}

// Slug 返回类型的 URL 标签（如 Sci-Fi -> scifi）
func (g Genre) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(g), "-", ""))
}

// Story 故事实体
type Story struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Genre        Genre     `json:"genre"`
	Fandom       string    `json:"fandom"`
	WordCount    int       `json:"word_count"`
	ChapterCount int       `json:"chapter_count"`
	IsComplete   bool      `json:"is_complete"`
	LastUpdated  time.Time `json:"last_updated"`
	// Likes 没有下限，误用时可能为负
	Likes      int      `json:"likes"`
	Views      int      `json:"views"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
}

// NewStory 创建新故事，计数归零，更新时间为当前时间
func NewStory(title, description, author string, genre Genre, fandom string) *Story {
	return &Story{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Author:      author,
		Genre:       genre,
		Fandom:      fandom,
		LastUpdated: time.Now(),
		Tags:        []string{},
	}
}

// Clone 返回深拷贝，调用方修改副本不会影响存储
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Tags != nil {
		cp.Tags = make([]string, len(s.Tags))
		copy(cp.Tags, s.Tags)
	}
	return &cp
}

// MatchesTerm 判断小写检索词是否出现在标题、简介、作者或任一标签中
func (s *Story) MatchesTerm(lowerTerm string) bool {
	if strings.Contains(strings.ToLower(s.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(s.Description), lowerTerm) ||
		strings.Contains(strings.ToLower(s.Author), lowerTerm) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}
