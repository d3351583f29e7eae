package repository

import (
	"context"

	"gorm.io/gorm"

	"fyp-admin/backend/internal/model"
)

// TermRepository 学期数据访问接口
type TermRepository interface {
	Create(ctx context.Context, term *model.Term) error
	GetByID(ctx context.Context, id string) (*model.Term, error)
	// ListCurrent 返回所有 is_current = true 的行。
	// 正常情况至多一行；返回多行说明不变式已被破坏，由上层判定并报错。
	ListCurrent(ctx context.Context) ([]model.Term, error)
	List(ctx context.Context) ([]model.Term, error)
	// DemoteCurrent 将所有学期的 is_current 置为 false
	DemoteCurrent(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// termRepo TermRepository 的 GORM 实现
type termRepo struct {
	db *gorm.DB
}

// NewTermRepo 创建 TermRepository 实例
func NewTermRepo(db *gorm.DB) TermRepository {
	return &termRepo{db: db}
}

func (r *termRepo) Create(ctx context.Context, term *model.Term) error {
	return r.db.WithContext(ctx).Create(term).Error
}

func (r *termRepo) GetByID(ctx context.Context, id string) (*model.Term, error) {
	var term model.Term
	err := r.db.WithContext(ctx).
		Where("term_id = ?", id).
		First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepo) ListCurrent(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Where("is_current = ?", true).
		Find(&terms).Error
	return terms, err
}

func (r *termRepo) List(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&terms).Error
	return terms, err
}

func (r *termRepo) DemoteCurrent(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Term{}).
		Where("is_current = ?", true).
		Update("is_current", false).Error
}

func (r *termRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("term_id = ?", id).
		Delete(&model.Term{}).Error
}
