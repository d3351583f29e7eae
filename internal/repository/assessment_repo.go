package repository

import (
	"context"

	"gorm.io/gorm"

	"fyp-admin/backend/internal/model"
)

// ── 评估模块数据访问：提交 / 评分准则 / 得分 ──

// SubmissionRepository 提交数据访问接口
type SubmissionRepository interface {
	// GetByID 按 ID 查询提交，同时预加载所属交付物
	GetByID(ctx context.Context, id string) (*model.Submission, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("Deliverable").
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// RubricRepository 评分准则数据访问接口
type RubricRepository interface {
	ListByDeliverable(ctx context.Context, deliverableID string) ([]model.Rubric, error)
	// ListScoreBands 按 band_order 升序返回某准则的全部等级带
	ListScoreBands(ctx context.Context, rubricID string) ([]model.ScoreBand, error)
}

// rubricRepo RubricRepository 的 GORM 实现
type rubricRepo struct {
	db *gorm.DB
}

// NewRubricRepo 创建 RubricRepository 实例
func NewRubricRepo(db *gorm.DB) RubricRepository {
	return &rubricRepo{db: db}
}

func (r *rubricRepo) ListByDeliverable(ctx context.Context, deliverableID string) ([]model.Rubric, error) {
	var rubrics []model.Rubric
	err := r.db.WithContext(ctx).
		Where("deliverable_id = ?", deliverableID).
		Order("created_at ASC").
		Find(&rubrics).Error
	return rubrics, err
}

func (r *rubricRepo) ListScoreBands(ctx context.Context, rubricID string) ([]model.ScoreBand, error) {
	var bands []model.ScoreBand
	err := r.db.WithContext(ctx).
		Where("rubric_id = ?", rubricID).
		Order("band_order ASC").
		Find(&bands).Error
	return bands, err
}

// ScoreRepository 得分数据访问接口
type ScoreRepository interface {
	ListBySubmission(ctx context.Context, submissionID string) ([]model.Score, error)
}

// scoreRepo ScoreRepository 的 GORM 实现
type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) ListBySubmission(ctx context.Context, submissionID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Find(&scores).Error
	return scores, err
}
