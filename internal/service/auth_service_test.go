package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fyp-admin/backend/config"
	"fyp-admin/backend/internal/dto"
	"fyp-admin/backend/internal/model"
	"fyp-admin/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *mockRepos) {
	t.Helper()
	repo, m := newMockRepository()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// rdb 为 nil：黑名单功能降级，与生产降级路径一致
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, m
}

func seedUser(t *testing.T, m *mockRepos, email, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		UserID:       "user-001",
		Name:         "测试协调员",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	m.user.users[user.UserID] = user
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := setupTestAuthService(t)
	seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Token 对不应为空")
	}
	if tokens.User.Role != "coordinator" {
		t.Errorf("期望角色 coordinator，实际=%s", tokens.User.Role)
	}
	if tokens.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望 expires_in=900，实际=%d", tokens.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := setupTestAuthService(t)
	seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未注册邮箱不应暴露用户不存在，期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, m := setupTestAuthService(t)
	seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新后的 AccessToken 不应为空")
	}
}

// Access Token 不能当作 Refresh Token 使用
func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, m := setupTestAuthService(t)
	seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.AccessToken,
	})
	if !errors.Is(err, ErrRefreshTokenBad) {
		t.Errorf("期望 ErrRefreshTokenBad，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})
	if !errors.Is(err, ErrRefreshTokenBad) {
		t.Errorf("期望 ErrRefreshTokenBad，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, m := setupTestAuthService(t)
	user := seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newsecret456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.com",
		Password: "newsecret456",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, m := setupTestAuthService(t)
	user := seedUser(t, m, "coord@example.com", "secret123", "coordinator")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newsecret456",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}
