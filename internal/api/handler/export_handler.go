package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"fyp-admin/backend/internal/service"
	"fyp-admin/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRoster 导出当前学期学生名册
// GET /api/v1/export/roster
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportRoster(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCurrentTerm):
			response.NotFound(c, 14003, "当前学期不存在")
		case errors.Is(err, service.ErrCurrentTermConflict):
			response.Error(c, 500, 14004, err.Error())
		case errors.Is(err, service.ErrExportNoStudents):
			response.NotFound(c, 14501, "当前学期暂无学生记录")
		default:
			response.InternalError(c)
		}
		return
	}

	// 文件名含中文，按 RFC 5987 编码
	encoded := url.PathEscape(filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", encoded))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
