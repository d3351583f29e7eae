package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/internal/repository"
)

// ── 讲师模块业务错误 ──

var (
	ErrLecturerNotFound    = errors.New("讲师不存在")
	ErrLecturerEmailExists = errors.New("讲师邮箱已存在")
)

// LecturerService 讲师业务接口
type LecturerService interface {
	Create(ctx context.Context, req *dto.CreateLecturerRequest, callerID string) (*dto.LecturerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LecturerResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.LecturerResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateLecturerRequest, callerID string) (*dto.LecturerResponse, error)
	Delete(ctx context.Context, id string) error
}

type lecturerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLecturerService 创建 LecturerService 实例
func NewLecturerService(repo *repository.Repository, logger *zap.Logger) LecturerService {
	return &lecturerService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *lecturerService) Create(ctx context.Context, req *dto.CreateLecturerRequest, callerID string) (*dto.LecturerResponse, error) {
	// 检查邮箱唯一性
	if _, err := s.repo.Lecturer.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrLecturerEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lecturer := &model.Lecturer{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}
	lecturer.CreatedBy = &callerID
	lecturer.UpdatedBy = &callerID

	if err := s.repo.Lecturer.Create(ctx, lecturer); err != nil {
		s.logger.Error("创建讲师失败", zap.Error(err))
		return nil, err
	}

	return s.toLecturerResponse(lecturer), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *lecturerService) GetByID(ctx context.Context, id string) (*dto.LecturerResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerNotFound
		}
		s.logger.Error("查询讲师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toLecturerResponse(lecturer), nil
}

// ────────────────────── List ──────────────────────

func (s *lecturerService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.LecturerResponse, int64, error) {
	lecturers, total, err := s.repo.Lecturer.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出讲师失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.LecturerResponse, 0, len(lecturers))
	for i := range lecturers {
		result = append(result, *s.toLecturerResponse(&lecturers[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *lecturerService) Update(ctx context.Context, id string, req *dto.UpdateLecturerRequest, callerID string) (*dto.LecturerResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerNotFound
		}
		s.logger.Error("查询讲师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		lecturer.Name = *req.Name
	}
	if req.Email != nil {
		existing, err := s.repo.Lecturer.GetByEmail(ctx, *req.Email)
		if err == nil && existing.LecturerID != id {
			return nil, ErrLecturerEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		lecturer.Email = *req.Email
	}
	if req.Department != nil {
		lecturer.Department = *req.Department
	}

	lecturer.UpdatedBy = &callerID

	if err := s.repo.Lecturer.Update(ctx, lecturer); err != nil {
		s.logger.Error("更新讲师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toLecturerResponse(lecturer), nil
}

// ────────────────────── Delete ──────────────────────

func (s *lecturerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Lecturer.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLecturerNotFound
		}
		s.logger.Error("查询讲师失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Lecturer.Delete(ctx, id); err != nil {
		s.logger.Error("删除讲师失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *lecturerService) toLecturerResponse(lecturer *model.Lecturer) *dto.LecturerResponse {
	return &dto.LecturerResponse{
		ID:         lecturer.LecturerID,
		Name:       lecturer.Name,
		Email:      lecturer.Email,
		Department: lecturer.Department,
	}
}
