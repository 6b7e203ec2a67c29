package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// 目录资源类型
const (
	resourceStory   = "story"
	resourceChapter = "chapter"
)

// catalogTarget 返回路由指向的目录资源类型与 ID，非资源路由返回空串
func catalogTarget(c *gin.Context) (resource, id string) {
	id = c.Param("id")
	if id == "" {
		return "", ""
	}
	path := c.FullPath()
	switch {
	case strings.HasPrefix(path, "/api/stories/"):
		return resourceStory, id
	case strings.HasPrefix(path, "/api/chapters/"):
		return resourceChapter, id
	default:
		return "", ""
	}
}
