package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/internal/repository"
)

// ── 学期模块业务错误 ──

var (
	ErrTermNotFound    = errors.New("学期不存在")
	ErrTermDateInvalid = errors.New("学期开始日期格式无效，应为 YYYY-MM-DD")
	ErrNoCurrentTerm   = errors.New("当前学期不存在")
	// ErrCurrentTermConflict 表示 is_current = true 的行超过一行。
	// 这是致命的一致性故障，需人工介入修复，不做自动纠正。
	ErrCurrentTermConflict = errors.New("检测到多个当前学期，数据一致性已被破坏，请联系管理员")
	ErrTermActivation      = errors.New("激活学期失败")
)

// TermService 学期业务接口
// 不变式：任意时刻 is_current = true 的学期至多一个
type TermService interface {
	// Activate 创建新学期并激活为当前学期。
	// 标签由开始日期推导（如 "September 2024"）；降级旧学期与插入新学期在同一事务内完成。
	Activate(ctx context.Context, req *dto.ActivateTermRequest, callerID string) (*dto.TermResponse, error)
	// GetCurrent 查询当前学期；零行与多行可区分（后者为一致性故障）
	GetCurrent(ctx context.Context) (*dto.TermResponse, error)
	List(ctx context.Context) ([]dto.TermResponse, error)
	// Delete 删除学期；若删除的是当前学期，系统随后处于"无当前学期"状态，不自动回退激活其他学期
	Delete(ctx context.Context, id string, callerID string) error
}

type termService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTermService 创建 TermService 实例
func NewTermService(repo *repository.Repository, logger *zap.Logger) TermService {
	return &termService{repo: repo, logger: logger}
}

// ────────────────────── Activate ──────────────────────

func (s *termService) Activate(ctx context.Context, req *dto.ActivateTermRequest, callerID string) (*dto.TermResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrTermDateInvalid
	}

	// 标签固定使用英文月份，与前端展示和导入文件命名保持一致
	label := startDate.Format("January 2006")

	// 使用事务保证 DemoteCurrent + Create 的原子性：
	// 两步若分离，并发激活会留下多个当前学期
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTermActivation, err)
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

	// 先将所有学期降级为非当前
	if err := txRepo.Term.DemoteCurrent(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("降级当前学期失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTermActivation, err)
	}

	term := &model.Term{
		Label:     label,
		StartDate: startDate,
		IsCurrent: true,
	}
	term.CreatedBy = &callerID
	term.UpdatedBy = &callerID

	if err := txRepo.Term.Create(ctx, term); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTermActivation, err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrTermActivation, err)
		}
	}

	s.logger.Info("学期已激活",
		zap.String("term_id", term.TermID),
		zap.String("label", label))

	return s.toTermResponse(term), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *termService) GetCurrent(ctx context.Context) (*dto.TermResponse, error) {
	terms, err := s.repo.Term.ListCurrent(ctx)
	if err != nil {
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}

	switch len(terms) {
	case 0:
		return nil, ErrNoCurrentTerm
	case 1:
		return s.toTermResponse(&terms[0]), nil
	default:
		// 多行当前学期：大声失败而非静默挑一行
		s.logger.Error("当前学期不变式被破坏", zap.Int("count", len(terms)))
		return nil, ErrCurrentTermConflict
	}
}

// ────────────────────── List ──────────────────────

func (s *termService) List(ctx context.Context) ([]dto.TermResponse, error) {
	terms, err := s.repo.Term.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TermResponse, 0, len(terms))
	for i := range terms {
		result = append(result, *s.toTermResponse(&terms[i]))
	}

	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *termService) Delete(ctx context.Context, id string, callerID string) error {
	term, err := s.repo.Term.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Term.Delete(ctx, id); err != nil {
		s.logger.Error("删除学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if term.IsCurrent {
		// 删除当前学期后系统无当前学期，等待显式重新激活
		s.logger.Warn("当前学期已删除，系统处于无当前学期状态",
			zap.String("term_id", id),
			zap.String("caller", callerID))
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *termService) toTermResponse(term *model.Term) *dto.TermResponse {
	return &dto.TermResponse{
		ID:        term.TermID,
		Label:     term.Label,
		StartDate: term.StartDate.Format("2006-01-02"),
		IsCurrent: term.IsCurrent,
		CreatedAt: term.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: term.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
