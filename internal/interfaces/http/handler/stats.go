package handler

import (
	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/application/engagement"
	"fiction-catalog-api/internal/domain/entity"
	"fiction-catalog-api/internal/interfaces/http/dto"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
)

// StatsHandler 统计处理器
type StatsHandler struct {
	svc    *catalog.Service
	ranker *engagement.Ranker
}

// NewStatsHandler 创建统计处理器，ranker 为 nil 时热度榜不可用
func NewStatsHandler(svc *catalog.Service, ranker *engagement.Ranker) *StatsHandler {
	return &StatsHandler{svc: svc, ranker: ranker}
}

// GenreStats 按类型统计
// @Summary 类型统计
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.Response[[]entity.GenreStat]
// @Router /api/stats/genres [get]
func (h *StatsHandler) GenreStats(c *gin.Context) {
	stats, err := h.svc.GenreStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch genre stats")
		return
	}
	dto.Success(c, stats)
}

// FandomStats 按同人圈统计
// @Summary 同人圈统计
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.Response[[]entity.FandomStat]
// @Router /api/stats/fandoms [get]
func (h *StatsHandler) FandomStats(c *gin.Context) {
	stats, err := h.svc.FandomStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch fandom stats")
		return
	}
	dto.Success(c, stats)
}

// Overview 合并统计
// @Summary 合并统计
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.Response[dto.StatsResponse]
// @Router /api/stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch stats")
		return
	}
	dto.Success(c, dto.ToStatsResponse(overview))
}

// Trending 热度榜
// @Summary 热度榜
// @Tags Stats
// @Produce json
// @Param limit query int false "条数" default(10)
// @Success 200 {object} dto.Response[[]dto.TrendingStoryResponse]
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/stats/trending [get]
func (h *StatsHandler) Trending(c *gin.Context) {
	if h.ranker == nil {
		dto.ServiceUnavailable(c, "trending is not enabled")
		return
	}

	limit := dto.BindLimit(c, defaultTrendingLimit, maxTrendingLimit)
	ranked, err := h.ranker.Top(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "failed to fetch trending stories")
		return
	}
	dto.Success(c, dto.ToTrendingListResponse(ranked))
}

// Genres 返回固定的类型词表
// @Summary 类型词表
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.Response[[]dto.GenreResponse]
// @Router /api/genres [get]
func (h *StatsHandler) Genres(c *gin.Context) {
	dto.Success(c, dto.ToGenreListResponse(entity.Genres()))
}

// SortOptions 返回支持的排序选项
// @Summary 排序选项
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.Response[[]dto.SortOptionResponse]
// @Router /api/sort-options [get]
func (h *StatsHandler) SortOptions(c *gin.Context) {
	dto.Success(c, dto.ToSortOptionListResponse(catalog.SortOptions()))
}
