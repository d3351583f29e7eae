package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/service"
	"fyp-admin/backend/pkg/response"
)

// RubricHandler 评估模块 HTTP 处理器
type RubricHandler struct {
	rubricSvc service.RubricService
}

// NewRubricHandler 创建 RubricHandler
func NewRubricHandler(rubricSvc service.RubricService) *RubricHandler {
	return &RubricHandler{rubricSvc: rubricSvc}
}

// GetRubricTree 获取提交对应的评分准则树
// GET /api/v1/rubrics/tree?submission_id=xxx
//
// 任何失败（提交不存在、配置缺失、存储故障）都返回 HTTP 200 的统一空形态：
// 空 rubrics、零权重加可读 message。调用方按"无数据"处理，不按 HTTP 错误处理。
func (h *RubricHandler) GetRubricTree(c *gin.Context) {
	submissionID := c.Query("submission_id")
	if submissionID == "" {
		response.OK(c, h.emptyTree("submission_id 不能为空"))
		return
	}

	tree, err := h.rubricSvc.LoadTree(c.Request.Context(), submissionID)
	if err != nil {
		response.OK(c, h.emptyTree(h.treeFailureMessage(err)))
		return
	}

	response.OK(c, tree)
}

// GetWeightedScore 获取提交的归一化加权得分
// GET /api/v1/submissions/:id/score
func (h *RubricHandler) GetWeightedScore(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	score, err := h.rubricSvc.WeightedScore(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.NotFound(c, 14201, "提交不存在")
		case errors.Is(err, service.ErrDeliverableNotLinked):
			response.BadRequest(c, 14202, "提交未关联交付物")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, score)
}

// ── 内部辅助方法 ──

func (h *RubricHandler) emptyTree(message string) *dto.RubricTreeResponse {
	return &dto.RubricTreeResponse{
		Rubrics:              []dto.RubricView{},
		DeliverableWeightage: 0,
		Message:              message,
	}
}

func (h *RubricHandler) treeFailureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return "提交不存在"
	case errors.Is(err, service.ErrDeliverableNotLinked):
		return "提交未关联交付物"
	default:
		return "加载评分准则失败"
	}
}
