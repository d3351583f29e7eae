package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/service"
	"fyp-admin/backend/pkg/response"
)

// LecturerHandler 讲师模块 HTTP 处理器
type LecturerHandler struct {
	lecturerSvc service.LecturerService
}

// NewLecturerHandler 创建 LecturerHandler
func NewLecturerHandler(lecturerSvc service.LecturerService) *LecturerHandler {
	return &LecturerHandler{lecturerSvc: lecturerSvc}
}

// ListLecturers 获取讲师列表
// GET /api/v1/lecturers
func (h *LecturerHandler) ListLecturers(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lecturers, total, err := h.lecturerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, lecturers, total, req.GetPage(), req.GetPageSize())
}

// GetLecturer 获取讲师详情
// GET /api/v1/lecturers/:id
func (h *LecturerHandler) GetLecturer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲师ID不能为空")
		return
	}

	lecturer, err := h.lecturerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLecturerError(c, err)
		return
	}

	response.OK(c, lecturer)
}

// CreateLecturer 创建讲师
// POST /api/v1/lecturers
func (h *LecturerHandler) CreateLecturer(c *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lecturer, err := h.lecturerSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleLecturerError(c, err)
		return
	}

	response.Created(c, lecturer)
}

// UpdateLecturer 更新讲师
// PUT /api/v1/lecturers/:id
func (h *LecturerHandler) UpdateLecturer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲师ID不能为空")
		return
	}

	var req dto.UpdateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lecturer, err := h.lecturerSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleLecturerError(c, err)
		return
	}

	response.OK(c, lecturer)
}

// DeleteLecturer 删除讲师
// DELETE /api/v1/lecturers/:id
func (h *LecturerHandler) DeleteLecturer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲师ID不能为空")
		return
	}

	if err := h.lecturerSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLecturerError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLecturerError 统一处理讲师模块业务错误
func (h *LecturerHandler) handleLecturerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLecturerNotFound):
		response.NotFound(c, 14301, "讲师不存在")
	case errors.Is(err, service.ErrLecturerEmailExists):
		response.BadRequest(c, 14302, "讲师邮箱已存在")
	default:
		response.InternalError(c)
	}
}
