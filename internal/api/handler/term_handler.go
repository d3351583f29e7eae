package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/service"
	"fyp-admin/backend/pkg/response"
)

// TermHandler 学期模块 HTTP 处理器
type TermHandler struct {
	termSvc service.TermService
}

// NewTermHandler 创建 TermHandler
func NewTermHandler(termSvc service.TermService) *TermHandler {
	return &TermHandler{termSvc: termSvc}
}

// ListTerms 获取学期列表
// GET /api/v1/terms
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.termSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": terms})
}

// GetCurrentTerm 获取当前学期
// GET /api/v1/terms/current
func (h *TermHandler) GetCurrentTerm(c *gin.Context) {
	term, err := h.termSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, term)
}

// ActivateTerm 创建并激活新学期
// POST /api/v1/terms
func (h *TermHandler) ActivateTerm(c *gin.Context) {
	var req dto.ActivateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	term, err := h.termSvc.Activate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.Created(c, term)
}

// DeleteTerm 删除学期
// DELETE /api/v1/terms/:id
func (h *TermHandler) DeleteTerm(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学期ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.termSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTermError 统一处理学期模块业务错误
func (h *TermHandler) handleTermError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrTermDateInvalid):
		response.BadRequest(c, 14002, "学期开始日期格式无效")
	case errors.Is(err, service.ErrNoCurrentTerm):
		response.NotFound(c, 14003, "当前学期不存在")
	case errors.Is(err, service.ErrCurrentTermConflict):
		// 一致性故障：不隐藏为普通 500，向调用方暴露可读原因
		response.Error(c, 500, 14004, err.Error())
	case errors.Is(err, service.ErrTermActivation):
		response.Error(c, 500, 14005, err.Error())
	default:
		response.InternalError(c)
	}
}
