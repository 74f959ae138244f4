package routes

import (
	"strings"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/controllers"
	"github.com/SketchShifter/journal_backend/internal/middlewares"
	"github.com/SketchShifter/journal_backend/internal/repository"
	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version アプリケーションバージョン
const Version = "1.0.0"

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB, storage services.ImageStorage) *gin.Engine {
	r := gin.New()

	// ミドルウェアを設定
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// ローカル保存の画像を配信
	if cfg.Storage.Driver == "local" && strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	}

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// サービスを作成
	authService := services.NewAuthService(userRepo, tokenRepo, cfg)
	userService := services.NewUserService(userRepo, entryRepo, storage)
	entryService := services.NewEntryService(entryRepo, storage, cfg)
	exportService := services.NewExportService(entryRepo)
	tagService := services.NewTagService(tagRepo)
	healthService := services.NewHealthService(db, Version)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	entryController := controllers.NewEntryController(entryService, exportService)
	tagController := controllers.NewTagController(tagService)
	healthController := controllers.NewHealthController(healthService)

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)

	// APIグループを作成
	api := r.Group("/api/v1")
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// ユーザールート
		users := api.Group("/users")
		{
			users.POST("/", userController.Create)
			users.POST("/login/", authController.Login)
			users.POST("/logout/", authMiddleware, authController.Logout)
			users.GET("/me/", authMiddleware, userController.GetMe)
			users.PUT("/me/", authMiddleware, userController.ReplaceMe)
			users.PATCH("/me/", authMiddleware, userController.PatchMe)
			users.DELETE("/me/", authMiddleware, userController.DeleteMe)
		}

		// エントリールート（すべて認証が必要）
		entries := api.Group("/entries", authMiddleware)
		{
			entries.GET("/", entryController.List)
			entries.POST("/", entryController.Create)
			entries.GET("/:id/", entryController.GetByID)
			entries.PUT("/:id/", entryController.Replace)
			entries.PATCH("/:id/", entryController.Patch)
			entries.DELETE("/:id/", entryController.Delete)
			entries.POST("/:id/upload-image/", entryController.UploadImage)
		}

		// エクスポート
		api.GET("/export/entries/", authMiddleware, entryController.ExportPDF)

		// タグルート（認証不要）
		api.GET("/tags/", tagController.List)
	}

	return r
}
