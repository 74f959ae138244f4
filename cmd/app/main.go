package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/logger"
	"github.com/SketchShifter/journal_backend/internal/routes"
	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}

	logger.Init(cfg.Log)
	log.Info().Msg("サーバーを起動しています...")

	gin.SetMode(cfg.Server.Mode)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Debug().Str("method", httpMethod).Str("path", absolutePath).Str("handler", handlerName).Msg("エンドポイント登録")
	}

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	// 画像ストレージ
	storage, err := services.NewImageStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("画像ストレージの初期化に失敗しました")
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("画像ストレージを初期化しました")

	// ルーターをセットアップ
	router := routes.SetupRouter(cfg, db, storage)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("サーバーを開始しています...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("サーバーの起動に失敗しました")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("サーバーを停止しています...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("サーバーの停止に失敗しました")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("サーバーを停止しました")
}
