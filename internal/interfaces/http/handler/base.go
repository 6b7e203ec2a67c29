package handler

import (
	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/interfaces/http/dto"
	apperrors "fiction-catalog-api/pkg/errors"
	"fiction-catalog-api/pkg/logger"
)

// respondError 输出错误：AppError 按其状态码返回，其余错误记录日志后返回 500
func respondError(c *gin.Context, err error, fallback string) {
	if apperrors.IsAppError(err) {
		appErr := apperrors.AsAppError(err)
		if appErr.HTTPStatus >= 500 {
			logger.Error(c.Request.Context(), fallback, err)
		}
		dto.FromAppError(c, appErr)
		return
	}
	logger.Error(c.Request.Context(), fallback, err)
	dto.InternalError(c, fallback)
}
