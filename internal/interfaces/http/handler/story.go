package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/application/catalog"
	"fiction-catalog-api/internal/interfaces/http/dto"
)

// StoryHandler 故事处理器
type StoryHandler struct {
	svc *catalog.Service
}

// NewStoryHandler 创建故事处理器
func NewStoryHandler(svc *catalog.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// ListStories 获取故事列表
// @Summary 获取故事列表
// @Description 按类型、同人圈、关键词过滤，排序后分页
// @Tags Stories
// @Produce json
// @Param genre query string false "类型"
// @Param fandom query string false "同人圈"
// @Param sortBy query string false "排序键" Enums(recent, popular, newest, wordCount)
// @Param search query string false "关键词"
// @Param limit query int false "条数" default(20)
// @Param offset query int false "偏移" default(0)
// @Success 200 {object} dto.Response[[]dto.StoryResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stories [get]
func (h *StoryHandler) ListStories(c *gin.Context) {
	query := dto.BindListStoriesQuery(c)

	page, err := h.svc.ListStories(c.Request.Context(), query.ToOptions())
	if err != nil {
		respondError(c, err, "failed to fetch stories")
		return
	}

	dto.SuccessWithPage(c, dto.ToStoryListResponse(page.Stories), dto.NewPageMeta(page.Limit, page.Offset, page.Total))
}

// GetStory 获取故事详情，同时记录一次浏览
// @Summary 获取故事详情
// @Tags Stories
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id} [get]
func (h *StoryHandler) GetStory(c *gin.Context) {
	story, err := h.svc.ViewStory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch story")
		return
	}
	if story == nil {
		dto.NotFound(c, "story not found")
		return
	}

	dto.Success(c, dto.ToStoryResponse(story))
}

// CreateStory 创建故事
// @Summary 创建故事
// @Tags Stories
// @Accept json
// @Produce json
// @Param body body dto.CreateStoryRequest true "故事信息"
// @Success 201 {object} dto.Response[dto.StoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/stories [post]
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	story, err := h.svc.CreateStory(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create story")
		return
	}

	dto.Created(c, dto.ToStoryResponse(story))
}

// RecordView 记录浏览，故事不存在时静默成功
// @Summary 记录浏览
// @Tags Stories
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.MessageResponse]
// @Router /api/stories/{id}/view [post]
func (h *StoryHandler) RecordView(c *gin.Context) {
	if err := h.svc.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to update story views")
		return
	}

	dto.SuccessWithMessage(c, "Story view recorded", dto.MessageResponse{Message: "Story view recorded"})
}

// LikeStory 点赞或取消点赞，故事不存在时静默成功
// @Summary 点赞/取消点赞
// @Tags Stories
// @Accept json
// @Produce json
// @Param id path string true "故事 ID"
// @Param body body dto.LikeRequest true "increment=true 点赞，false 取消"
// @Success 200 {object} dto.Response[dto.MessageResponse]
// @Router /api/stories/{id}/like [post]
func (h *StoryHandler) LikeStory(c *gin.Context) {
	// 空 body（含 chunked 空流）视为取消点赞
	var req dto.LikeRequest
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	if err := h.svc.AdjustLikes(c.Request.Context(), c.Param("id"), req.Increment); err != nil {
		respondError(c, err, "failed to update story like")
		return
	}

	dto.SuccessWithMessage(c, "Story like updated", dto.MessageResponse{Message: "Story like updated"})
}

// ListChapters 获取故事的章节列表
// @Summary 获取章节列表
// @Tags Chapters
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[[]dto.ChapterResponse]
// @Router /api/stories/{id}/chapters [get]
func (h *StoryHandler) ListChapters(c *gin.Context) {
	chapters, err := h.svc.ListChapters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch chapters")
		return
	}

	dto.Success(c, dto.ToChapterListResponse(chapters))
}

// CreateChapter 为故事创建章节
// @Summary 创建章节
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path string true "故事 ID"
// @Param body body dto.CreateChapterRequest true "章节信息"
// @Success 201 {object} dto.Response[dto.ChapterResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id}/chapters [post]
func (h *StoryHandler) CreateChapter(c *gin.Context) {
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.svc.CreateChapter(c.Request.Context(), req.ToInput(c.Param("id")))
	if err != nil {
		respondError(c, err, "failed to create chapter")
		return
	}

	dto.Created(c, dto.ToChapterResponse(chapter))
}
