package dto

// ── 学期模块 DTO ──

// ActivateTermRequest 创建并激活学期请求
// 标签由 start_date 推导（如 "September 2024"），不由调用方提供
type ActivateTermRequest struct {
	StartDate string `json:"start_date" binding:"required"` // "2024-09-01"
}

// TermResponse 学期信息响应
type TermResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	IsCurrent bool   `json:"is_current"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
