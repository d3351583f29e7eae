package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 创建公告请求
type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
	Body  string `json:"body"  binding:"required"`
}

// UpdateAnnouncementRequest 更新公告请求
type UpdateAnnouncementRequest struct {
	Title *string `json:"title" binding:"omitempty,min=2,max=200"`
	Body  *string `json:"body"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
