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

var ErrAnnouncementNotFound = errors.New("公告不存在")

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error) {
	announcement := &model.Announcement{
		Title: req.Title,
		Body:  req.Body,
	}
	announcement.CreatedBy = &callerID
	announcement.UpdatedBy = &callerID

	if err := s.repo.Announcement.Create(ctx, announcement); err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	return s.toAnnouncementResponse(announcement), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *announcementService) GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAnnouncementResponse(announcement), nil
}

// ────────────────────── List ──────────────────────

func (s *announcementService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error) {
	announcements, total, err := s.repo.Announcement.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出公告失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		result = append(result, *s.toAnnouncementResponse(&announcements[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}

	announcement.UpdatedBy = &callerID

	if err := s.repo.Announcement.Update(ctx, announcement); err != nil {
		s.logger.Error("更新公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAnnouncementResponse(announcement), nil
}

// ────────────────────── Delete ──────────────────────

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Announcement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("删除公告失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *announcementService) toAnnouncementResponse(announcement *model.Announcement) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		ID:        announcement.AnnouncementID,
		Title:     announcement.Title,
		Body:      announcement.Body,
		CreatedAt: announcement.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: announcement.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
