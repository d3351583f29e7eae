package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/repository"
)

// ── 评估模块业务错误 ──

var (
	ErrSubmissionNotFound    = errors.New("提交不存在")
	ErrDeliverableNotLinked  = errors.New("提交未关联交付物")
	ErrRubricTreeLoadFailure = errors.New("加载评分准则树失败")
)

// RubricService 评分准则业务接口
type RubricService interface {
	// LoadTree 解析提交所属的交付物，装配有序的评分准则树（准则 → 等级带）。
	// 整个读取在一个事务内完成，保证准则与等级带来自同一快照。
	LoadTree(ctx context.Context, submissionID string) (*dto.RubricTreeResponse, error)
	// WeightedScore 计算提交的归一化加权得分：
	// 原始分之和 / 已评准则满分之和 × 交付物权重
	WeightedScore(ctx context.Context, submissionID string) (*dto.WeightedScoreResponse, error)
}

type rubricService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRubricService 创建 RubricService 实例
func NewRubricService(repo *repository.Repository, logger *zap.Logger) RubricService {
	return &rubricService{repo: repo, logger: logger}
}

// ────────────────────── LoadTree ──────────────────────

func (s *rubricService) LoadTree(ctx context.Context, submissionID string) (*dto.RubricTreeResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, ErrRubricTreeLoadFailure
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	submission, err := txRepo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("id", submissionID), zap.Error(err))
		return nil, ErrRubricTreeLoadFailure
	}
	if submission.Deliverable == nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrDeliverableNotLinked
	}

	rubrics, err := txRepo.Rubric.ListByDeliverable(ctx, submission.DeliverableID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("查询评分准则失败", zap.String("deliverable_id", submission.DeliverableID), zap.Error(err))
		return nil, ErrRubricTreeLoadFailure
	}

	views := make([]dto.RubricView, 0, len(rubrics))
	for i := range rubrics {
		rubric := &rubrics[i]

		bands, err := txRepo.Rubric.ListScoreBands(ctx, rubric.RubricID)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("查询等级带失败", zap.String("rubric_id", rubric.RubricID), zap.Error(err))
			return nil, ErrRubricTreeLoadFailure
		}

		// bands 已按 band_order 升序；BandOrder 保留顺序，ScoreRanges 提供标签 → 描述查找
		bandOrder := make([]string, 0, len(bands))
		scoreRanges := make(map[string]string, len(bands))
		for _, b := range bands {
			bandOrder = append(bandOrder, b.RangeLabel)
			scoreRanges[b.RangeLabel] = b.Description
		}

		views = append(views, dto.RubricView{
			ID:          rubric.RubricID,
			Criteria:    rubric.Criteria,
			Component:   rubric.Component,
			MaxScore:    rubric.MaxScore,
			BandOrder:   bandOrder,
			ScoreRanges: scoreRanges,
		})
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, ErrRubricTreeLoadFailure
		}
	}

	return &dto.RubricTreeResponse{
		Rubrics:              views,
		DeliverableWeightage: submission.Deliverable.Weightage,
	}, nil
}

// ────────────────────── WeightedScore ──────────────────────

func (s *rubricService) WeightedScore(ctx context.Context, submissionID string) (*dto.WeightedScoreResponse, error) {
	submission, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("id", submissionID), zap.Error(err))
		return nil, err
	}
	if submission.Deliverable == nil {
		return nil, ErrDeliverableNotLinked
	}

	rubrics, err := s.repo.Rubric.ListByDeliverable(ctx, submission.DeliverableID)
	if err != nil {
		s.logger.Error("查询评分准则失败", zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.Score.ListBySubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("查询得分失败", zap.Error(err))
		return nil, err
	}

	awarded := make(map[string]float64, len(scores))
	for _, sc := range scores {
		awarded[sc.RubricID] = sc.Awarded
	}

	// 只统计已评分的准则：raw / max 在同一准则集合上求和，未评准则不拉低分母
	var rawTotal, maxTotal float64
	for i := range rubrics {
		if v, ok := awarded[rubrics[i].RubricID]; ok {
			rawTotal += v
			maxTotal += float64(rubrics[i].MaxScore)
		}
	}

	var normalized float64
	if maxTotal > 0 {
		normalized = rawTotal / maxTotal
	}

	weightage := submission.Deliverable.Weightage

	return &dto.WeightedScoreResponse{
		SubmissionID:         submissionID,
		RawTotal:             rawTotal,
		MaxTotal:             maxTotal,
		DeliverableScore:     normalized,
		DeliverableWeightage: weightage,
		WeightedScore:        normalized * weightage,
	}, nil
}
