package main

import (
	"flag"
	"time"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/logger"
	"github.com/SketchShifter/journal_backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	defaultBatchSize        = 500
	defaultPendingThreshold = 100
)

func main() {
	// コマンドライン引数の解析
	batchSize := flag.Int("batch-size", defaultBatchSize, "一度に削除するセッション数")
	pendingThreshold := flag.Int("threshold", defaultPendingThreshold, "このしきい値を超えると削除が開始される期限切れセッションの数")
	forceRun := flag.Bool("force", false, "しきい値に関係なく削除を強制的に実行")
	flag.Parse()

	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger.Init(cfg.Log)

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	tokenRepo := repository.NewTokenRepository(db)
	now := time.Now()

	// 期限切れのセッション数をカウント
	expired, err := tokenRepo.CountAllExpired(now)
	if err != nil {
		log.Fatal().Err(err).Msg("期限切れセッションのカウントに失敗しました")
	}
	log.Info().Int64("count", expired).Msg("期限切れのセッションが見つかりました")

	// しきい値を下回っていて強制実行でない場合は終了
	if expired < int64(*pendingThreshold) && !*forceRun {
		log.Info().Int("threshold", *pendingThreshold).Msg("しきい値を下回っているため、削除をスキップします")
		return
	}

	var total int64
	for {
		deleted, err := tokenRepo.PurgeExpired(now, *batchSize)
		if err != nil {
			log.Fatal().Err(err).Int64("deleted", total).Msg("期限切れセッションの削除に失敗しました")
		}
		total += deleted
		if deleted < int64(*batchSize) {
			break
		}
	}

	log.Info().Int64("deleted", total).Msg("期限切れセッションの削除が完了しました")
}
