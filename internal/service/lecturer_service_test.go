package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"fyp-admin/backend/internal/dto"
)

func setupTestLecturerService() (LecturerService, *mockRepos) {
	repo, m := newMockRepository()
	svc := NewLecturerService(repo, zap.NewNop())
	return svc, m
}

func TestLecturerService_Create_Success(t *testing.T) {
	svc, _ := setupTestLecturerService()

	result, err := svc.Create(context.Background(), &dto.CreateLecturerRequest{
		Name:       "陈老师",
		Email:      "chen@example.com",
		Department: "软件工程",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "陈老师" {
		t.Errorf("期望Name=陈老师，实际=%s", result.Name)
	}
}

func TestLecturerService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestLecturerService()

	req := &dto.CreateLecturerRequest{Name: "陈老师", Email: "chen@example.com"}
	if _, err := svc.Create(context.Background(), req, "admin-001"); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrLecturerEmailExists) {
		t.Errorf("期望 ErrLecturerEmailExists，实际: %v", err)
	}
}

func TestLecturerService_Update_Success(t *testing.T) {
	svc, _ := setupTestLecturerService()

	created, err := svc.Create(context.Background(), &dto.CreateLecturerRequest{
		Name:  "陈老师",
		Email: "chen@example.com",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	newDept := "人工智能"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateLecturerRequest{
		Department: &newDept,
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Department != "人工智能" {
		t.Errorf("期望Department=人工智能，实际=%s", updated.Department)
	}
}

func TestLecturerService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestLecturerService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrLecturerNotFound) {
		t.Errorf("期望 ErrLecturerNotFound，实际: %v", err)
	}
}
