package service

import (
	"context"

	"go.uber.org/zap"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/internal/repository"
)

// StudentService 学生业务接口（只读；写入由批量导入完成）
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filters := &repository.StudentListFilters{
		IntakeYear:  req.IntakeYear,
		IntakeMonth: req.IntakeMonth,
		Keyword:     req.Keyword,
	}

	students, total, err := s.repo.Student.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}

	return result, total, nil
}

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:          student.StudentID,
		MatricNo:    student.MatricNo,
		FullName:    student.FullName,
		Email:       student.Email,
		IntakeYear:  student.IntakeYear,
		IntakeMonth: student.IntakeMonth,
		CreatedAt:   student.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
