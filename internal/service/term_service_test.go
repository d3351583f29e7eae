package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestTermService() (TermService, *mockRepos) {
	repo, m := newMockRepository()
	svc := NewTermService(repo, zap.NewNop())
	return svc, m
}

// ── Activate 测试 ──

func TestTermService_Activate_Success(t *testing.T) {
	svc, m := setupTestTermService()

	result, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: "2024-09-01"}, "admin-001")
	if err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}
	if result.Label != "September 2024" {
		t.Errorf("期望Label=September 2024，实际=%s", result.Label)
	}
	if !result.IsCurrent {
		t.Error("新激活学期应为当前学期")
	}
	if m.term.currentCount() != 1 {
		t.Errorf("期望恰好 1 个当前学期，实际=%d", m.term.currentCount())
	}
}

func TestTermService_Activate_BadDateFormat(t *testing.T) {
	svc, _ := setupTestTermService()

	_, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: "01/09/2024"}, "admin-001")
	if !errors.Is(err, ErrTermDateInvalid) {
		t.Errorf("期望 ErrTermDateInvalid，实际: %v", err)
	}
}

// 不变式：任意 activate 序列后，当前学期数恒为 0 或 1，绝不超过 1
func TestTermService_Activate_InvariantAcrossSequence(t *testing.T) {
	svc, m := setupTestTermService()

	dates := []string{"2023-09-01", "2024-02-01", "2024-09-01", "2025-02-01"}
	for _, d := range dates {
		if _, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: d}, "admin-001"); err != nil {
			t.Fatalf("Activate(%s) 应成功: %v", d, err)
		}
		if m.term.currentCount() != 1 {
			t.Fatalf("Activate(%s) 后期望 1 个当前学期，实际=%d", d, m.term.currentCount())
		}
	}

	// 最后一次激活的学期胜出
	current, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent 应成功: %v", err)
	}
	if current.Label != "February 2025" {
		t.Errorf("期望Label=February 2025，实际=%s", current.Label)
	}
}

func TestTermService_Activate_StoreFault(t *testing.T) {
	svc, m := setupTestTermService()
	m.term.failOps["Create"] = errors.New("connection reset")

	_, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: "2024-09-01"}, "admin-001")
	if !errors.Is(err, ErrTermActivation) {
		t.Errorf("期望 ErrTermActivation，实际: %v", err)
	}
}

// ── GetCurrent 测试 ──

func TestTermService_GetCurrent_None(t *testing.T) {
	svc, _ := setupTestTermService()

	_, err := svc.GetCurrent(context.Background())
	if !errors.Is(err, ErrNoCurrentTerm) {
		t.Errorf("期望 ErrNoCurrentTerm，实际: %v", err)
	}
}

// 多个当前学期是致命一致性故障，必须与"无当前学期"可区分
func TestTermService_GetCurrent_Conflict(t *testing.T) {
	svc, m := setupTestTermService()
	m.term.terms["term-a"] = &model.Term{
		TermID: "term-a", Label: "September 2024",
		StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), IsCurrent: true,
	}
	m.term.terms["term-b"] = &model.Term{
		TermID: "term-b", Label: "February 2025",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), IsCurrent: true,
	}

	_, err := svc.GetCurrent(context.Background())
	if !errors.Is(err, ErrCurrentTermConflict) {
		t.Errorf("期望 ErrCurrentTermConflict，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestTermService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestTermService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrTermNotFound) {
		t.Errorf("期望 ErrTermNotFound，实际: %v", err)
	}
}

// 删除当前学期后系统处于无当前学期状态，不自动激活其他学期
func TestTermService_Delete_CurrentLeavesNone(t *testing.T) {
	svc, m := setupTestTermService()

	if _, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: "2023-09-01"}, "admin-001"); err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}
	current, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: "2024-09-01"}, "admin-001")
	if err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), current.ID, "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if m.term.currentCount() != 0 {
		t.Errorf("删除当前学期后期望 0 个当前学期，实际=%d", m.term.currentCount())
	}
	if _, err := svc.GetCurrent(context.Background()); !errors.Is(err, ErrNoCurrentTerm) {
		t.Errorf("期望 ErrNoCurrentTerm，实际: %v", err)
	}
}

// ── List 测试 ──

func TestTermService_List(t *testing.T) {
	svc, _ := setupTestTermService()

	for _, d := range []string{"2023-09-01", "2024-09-01"} {
		if _, err := svc.Activate(context.Background(), &dto.ActivateTermRequest{StartDate: d}, "admin-001"); err != nil {
			t.Fatalf("Activate 应成功: %v", err)
		}
	}

	terms, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(terms) != 2 {
		t.Errorf("期望 2 个学期，实际=%d", len(terms))
	}
}
