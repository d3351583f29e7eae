package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fyp-admin/backend/config"
	"fyp-admin/backend/internal/api/handler"
	"fyp-admin/backend/internal/api/middleware"
	"fyp-admin/backend/pkg/jwt"
	"fyp-admin/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
		}
		c.JSON(200, gin.H{"status": status})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口加限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学期模块
			terms := authorized.Group("/terms")
			{
				terms.GET("", h.Term.ListTerms)
				terms.GET("/current", h.Term.GetCurrentTerm)
				terms.POST("", middleware.RoleAuth("admin"), h.Term.ActivateTerm)
				terms.DELETE("/:id", middleware.RoleAuth("admin"), h.Term.DeleteTerm)
			}

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.POST("/import", middleware.RoleAuth("admin", "coordinator"), h.Student.ImportStudents)
			}

			// 评估模块
			authorized.GET("/rubrics/tree", h.Rubric.GetRubricTree)
			authorized.GET("/submissions/:id/score", h.Rubric.GetWeightedScore)

			// 讲师模块
			lecturers := authorized.Group("/lecturers")
			{
				lecturers.GET("", h.Lecturer.ListLecturers)
				lecturers.GET("/:id", h.Lecturer.GetLecturer)
				lecturers.POST("", middleware.RoleAuth("admin"), h.Lecturer.CreateLecturer)
				lecturers.PUT("/:id", middleware.RoleAuth("admin"), h.Lecturer.UpdateLecturer)
				lecturers.DELETE("/:id", middleware.RoleAuth("admin"), h.Lecturer.DeleteLecturer)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.GET("/:id", h.Announcement.GetAnnouncement)
				announcements.POST("", middleware.RoleAuth("admin", "coordinator"), h.Announcement.CreateAnnouncement)
				announcements.PUT("/:id", middleware.RoleAuth("admin", "coordinator"), h.Announcement.UpdateAnnouncement)
				announcements.DELETE("/:id", middleware.RoleAuth("admin"), h.Announcement.DeleteAnnouncement)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster", middleware.RoleAuth("admin", "coordinator"), h.Export.ExportRoster)
			}
		}
	}

	return r
}
