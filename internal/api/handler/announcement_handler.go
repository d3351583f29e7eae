package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/service"
	"fyp-admin/backend/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// ListAnnouncements 获取公告列表
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	announcements, total, err := h.announcementSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, announcements, total, req.GetPage(), req.GetPageSize())
}

// GetAnnouncement 获取公告详情
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	announcement, err := h.announcementSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, announcement)
}

// CreateAnnouncement 创建公告
// POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	announcement, err := h.announcementSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.Created(c, announcement)
}

// UpdateAnnouncement 更新公告
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	announcement, err := h.announcementSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, announcement)
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "公告ID不能为空")
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAnnouncementError 统一处理公告模块业务错误
func (h *AnnouncementHandler) handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 14401, "公告不存在")
	default:
		response.InternalError(c)
	}
}
