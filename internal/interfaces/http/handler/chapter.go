package handler

import (
	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/interfaces/http/dto"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	svc *catalog.Service
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(svc *catalog.Service) *ChapterHandler {
	return &ChapterHandler{svc: svc}
}

// GetChapter 获取章节详情
// @Summary 获取章节详情
// @Tags Chapters
// @Produce json
// @Param id path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.ChapterResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [get]
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	chapter, err := h.svc.GetChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch chapter")
		return
	}
	if chapter == nil {
		dto.NotFound(c, "chapter not found")
		return
	}

	dto.Success(c, dto.ToChapterResponse(chapter))
}
