package handler

import (
	"fyp-admin/backend/config"
	"fyp-admin/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Term         *TermHandler
	Student      *StudentHandler
	Rubric       *RubricHandler
	Lecturer     *LecturerHandler
	Announcement *AnnouncementHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Term:         NewTermHandler(svc.Term),
		Student:      NewStudentHandler(cfg, svc.Student, svc.Enrollment),
		Rubric:       NewRubricHandler(svc.Rubric),
		Lecturer:     NewLecturerHandler(svc.Lecturer),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
