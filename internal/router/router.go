package router

import (
	"github.com/ljy0221/spring-board/internal/config"
	"github.com/ljy0221/spring-board/internal/handler"
	"github.com/ljy0221/spring-board/internal/middleware"
	"github.com/ljy0221/spring-board/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires services, handlers and routes onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.Default())
	r.MaxMultipartMemory = cfg.Upload.MaxSize

	users := service.NewUserService(db)
	sessions := service.NewSessionService(db, cfg.Session.Secret, cfg.Session.ExpireHours)
	boards := service.NewBoardService(db, cfg.App.StrictSearch)
	comments := service.NewCommentService(db)
	likes := service.NewLikeService(db)
	files := service.NewFileService(db, cfg.Upload.Dir)

	// every request resolves its session identity; authenticated requests
	// leave an audit row
	r.Use(middleware.Identify(sessions, cfg.Session.CookieName))
	r.Use(middleware.Audit(db))

	authHandler := handler.NewAuthHandler(users, sessions, cfg.Session.CookieName)
	profileHandler := handler.NewProfileHandler(db, users, sessions, cfg.Session.CookieName)
	boardHandler := handler.NewBoardHandler(boards, comments, likes, files, cfg.App.PageSize)
	commentHandler := handler.NewCommentHandler(comments)
	likeHandler := handler.NewLikeHandler(likes)
	fileHandler := handler.NewFileHandler(files)
	exportHandler := handler.NewExportHandler(db)

	// public
	r.GET("/board/list", boardHandler.List)
	r.GET("/board/detail/:id", boardHandler.Detail)
	r.GET("/board/file/download/:fileId", fileHandler.Download)
	r.GET("/user/register", authHandler.RegisterForm)
	r.POST("/user/register", authHandler.Register)
	r.GET("/user/login", authHandler.LoginForm)
	r.POST("/user/login", authHandler.Login)

	// browser flow, anonymous callers get sent to the login page
	page := r.Group("", middleware.RequireAuth(true))
	page.GET("/board/write", boardHandler.WriteForm)
	page.POST("/board/write", boardHandler.Write)
	page.GET("/board/edit/:id", boardHandler.EditForm)
	page.POST("/board/edit/:id", boardHandler.Edit)
	page.GET("/board/delete/:id", boardHandler.Delete)
	page.POST("/comment/write", commentHandler.Write)
	page.GET("/comment/delete/:id", commentHandler.Delete)
	page.GET("/user/logout", authHandler.Logout)
	page.GET("/user/profile", profileHandler.Profile)
	page.POST("/user/profile/update", profileHandler.UpdateProfile)
	page.POST("/user/profile/change-password", profileHandler.ChangePassword)
	page.POST("/user/profile/delete", profileHandler.DeleteAccount)
	page.GET("/user/activity", profileHandler.Activity)

	// API style, anonymous callers get 401
	api := r.Group("", middleware.RequireAuth(false))
	api.POST("/board/:id/like", likeHandler.Toggle)
	api.GET("/board/export/csv", exportHandler.ExportCSV)
	api.GET("/board/export/xlsx", exportHandler.ExportXLSX)

	return r
}
