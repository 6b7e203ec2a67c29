// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/application/catalog"
)

// ListStoriesQuery 故事列表查询参数
type ListStoriesQuery struct {
	Genre  string `form:"genre" json:"genre"`
	Fandom string `form:"fandom" json:"fandom"`
	SortBy string `form:"sortBy" json:"sortBy"`
	Search string `form:"search" json:"search"`
	Limit  int    `form:"limit" json:"limit"`
	Offset int    `form:"offset" json:"offset"`
}

// ToOptions 转换为查询选项
func (q ListStoriesQuery) ToOptions() catalog.QueryOptions {
	return catalog.QueryOptions{
		Genre:  q.Genre,
		Fandom: q.Fandom,
		SortBy: catalog.SortBy(q.SortBy),
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
}

// BindListStoriesQuery 从 Gin Context 绑定列表查询参数，无法解析的数字按缺省处理
func BindListStoriesQuery(c *gin.Context) ListStoriesQuery {
	return ListStoriesQuery{
		Genre:  strings.TrimSpace(c.Query("genre")),
		Fandom: strings.TrimSpace(c.Query("fandom")),
		SortBy: strings.TrimSpace(c.Query("sortBy")),
		Search: c.Query("search"),
		Limit:  parseIntWithDefault(c.Query("limit"), 0),
		Offset: parseIntWithDefault(c.Query("offset"), 0),
	}
}

// BindLimit 绑定 limit 参数
func BindLimit(c *gin.Context, defaultVal, maxVal int) int {
	limit := parseIntWithDefault(c.Query("limit"), defaultVal)
	if limit < 1 {
		limit = defaultVal
	}
	if limit > maxVal {
		limit = maxVal
	}
	return limit
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// IDRequest 资源 ID 请求
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// LikeRequest 点赞请求，缺省 increment 视为取消点赞
type LikeRequest struct {
	Increment bool `json:"increment"`
}
