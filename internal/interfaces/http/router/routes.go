// Package router 提供 HTTP 路由配置
package router

import (
	"fiction-catalog-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册目录 API 路由
func RegisterAPIRoutes(
	api *gin.RouterGroup,
	storyHandler *handler.StoryHandler,
	chapterHandler *handler.ChapterHandler,
	statsHandler *handler.StatsHandler,
) {
	// 故事
	stories := api.Group("/stories")
	{
		stories.GET("", storyHandler.ListStories)
		stories.POST("", storyHandler.CreateStory)
		stories.GET("/:id", storyHandler.GetStory)
		stories.POST("/:id/view", storyHandler.RecordView)
		stories.POST("/:id/like", storyHandler.LikeStory)

		// 故事下的章节
		stories.GET("/:id/chapters", storyHandler.ListChapters)
		stories.POST("/:id/chapters", storyHandler.CreateChapter)
	}

	// 章节
	api.GET("/chapters/:id", chapterHandler.GetChapter)

	// 统计
	stats := api.Group("/stats")
	{
		stats.GET("", statsHandler.Overview)
		stats.GET("/genres", statsHandler.GenreStats)
		stats.GET("/fandoms", statsHandler.FandomStats)
		stats.GET("/trending", statsHandler.Trending)
	}

	// 词表
	api.GET("/genres", statsHandler.Genres)
	api.GET("/sort-options", statsHandler.SortOptions)
}
