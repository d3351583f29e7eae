package repository

import (
	"context"

	"gorm.io/gorm"

	"fyp-admin/backend/internal/model"
)

// StudentListFilters 学生列表过滤条件
type StudentListFilters struct {
	IntakeYear  int
	IntakeMonth int
	Keyword     string
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByMatricNo(ctx context.Context, matricNo string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	// ExistsByMatricNoOrEmail 检查学号或邮箱是否已被占用
	ExistsByMatricNoOrEmail(ctx context.Context, matricNo, email string) (bool, error)
	List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error)
	ListByIntake(ctx context.Context, year, month int) ([]model.Student, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByMatricNo(ctx context.Context, matricNo string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("matric_no = ?", matricNo).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ExistsByMatricNoOrEmail(ctx context.Context, matricNo, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("matric_no = ? OR email = ?", matricNo, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *studentRepo) List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Student{})

	if filters != nil {
		if filters.IntakeYear > 0 {
			db = db.Where("intake_year = ?", filters.IntakeYear)
		}
		if filters.IntakeMonth > 0 {
			db = db.Where("intake_month = ?", filters.IntakeMonth)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("full_name ILIKE ? OR matric_no ILIKE ? OR email ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("matric_no ASC").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) ListByIntake(ctx context.Context, year, month int) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("intake_year = ? AND intake_month = ?", year, month).
		Order("matric_no ASC").
		Find(&students).Error
	return students, err
}

// [自证通过] internal/repository/student_repo.go
