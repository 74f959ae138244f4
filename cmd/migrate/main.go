package main

import (
	"os"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/logger"
	"github.com/SketchShifter/journal_backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 引数をチェック
	if len(os.Args) < 2 {
		log.Fatal().Msg("使用方法: migrate [up|down|wait]")
	}

	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger.Init(cfg.Log)

	command := os.Args[1]

	// データベースが起動するまで待つ
	db, err := config.WaitForDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	switch command {
	case "wait":
		log.Info().Msg("データベースは利用可能です")

	case "up":
		if err := up(db); err != nil {
			log.Fatal().Err(err).Msg("マイグレーションに失敗しました")
		}
		log.Info().Msg("マイグレーションが成功しました")

	case "down":
		// テーブルを削除（逆順）
		if err := db.Migrator().DropTable(
			&models.AuthToken{},
			"entry_tags",
			&models.Entry{},
			&models.Tag{},
			&models.User{},
		); err != nil {
			log.Fatal().Err(err).Msg("テーブル削除に失敗しました")
		}
		log.Info().Msg("テーブルの削除が成功しました")

	default:
		log.Fatal().Str("command", command).Msg("不明なコマンドです")
	}
}

// up すべてのテーブルを作成・更新
func up(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
