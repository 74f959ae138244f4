package main

import (
	"flag"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/logger"
	"github.com/SketchShifter/journal_backend/internal/repository"
	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "", "管理者のメールアドレス")
	password := flag.String("password", "", "管理者のパスワード")
	username := flag.String("username", "admin", "表示名")
	flag.Parse()

	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger.Init(cfg.Log)

	if *password == "" {
		log.Fatal().Msg("-password を指定してください")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	// ユーザー作成だけなので画像ストレージは使わない
	userService := services.NewUserService(
		repository.NewUserRepository(db),
		repository.NewEntryRepository(db),
		nil,
	)

	user, err := userService.CreateSuperuser(*email, *password, services.UserAttrs{Username: *username})
	if err != nil {
		log.Fatal().Err(err).Msg("管理者ユーザーの作成に失敗しました")
	}

	if !user.IsAdmin() {
		log.Fatal().Uint("id", user.ID).Msg("作成したユーザーに管理者権限がありません")
	}

	log.Info().Uint("id", user.ID).Str("email", user.Email).Bool("admin", user.IsAdmin()).Msg("管理者ユーザーを作成しました")
}
