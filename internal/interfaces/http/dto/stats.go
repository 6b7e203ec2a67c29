package dto

import (
	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/application/engagement"
	"fiction-catalog-api/internal/domain/entity"
)

// StatsResponse 合并统计响应
type StatsResponse struct {
	Genres  []entity.GenreStat  `json:"genres"`
	Fandoms []entity.FandomStat `json:"fandoms"`
}

// ToStatsResponse 转换为合并统计响应
func ToStatsResponse(o *catalog.Overview) *StatsResponse {
	return &StatsResponse{Genres: o.Genres, Fandoms: o.Fandoms}
}

// GenreResponse 类型词表条目
type GenreResponse struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// ToGenreListResponse 转换为类型词表响应
func ToGenreListResponse(genres []entity.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{Label: string(g), Slug: g.Slug()})
	}
	return out
}

// SortOptionResponse 排序选项
type SortOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ToSortOptionListResponse 转换为排序选项响应
func ToSortOptionListResponse(opts []catalog.SortOption) []SortOptionResponse {
	out := make([]SortOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, SortOptionResponse{Value: string(o.Value), Label: o.Label})
	}
	return out
}

// TrendingStoryResponse 热度榜条目
type TrendingStoryResponse struct {
	Story *StoryResponse `json:"story"`
	Score float64        `json:"score"`
}

// ToTrendingListResponse 转换为热度榜响应
func ToTrendingListResponse(ranked []engagement.RankedStory) []TrendingStoryResponse {
	out := make([]TrendingStoryResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, TrendingStoryResponse{Story: ToStoryResponse(r.Story), Score: r.Score})
	}
	return out
}
