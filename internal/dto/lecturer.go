package dto

// ── 讲师模块 DTO ──

// CreateLecturerRequest 创建讲师请求
type CreateLecturerRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

// UpdateLecturerRequest 更新讲师请求
type UpdateLecturerRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// LecturerResponse 讲师信息响应
type LecturerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
