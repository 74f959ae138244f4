package logger

import (
	"os"
	"time"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init グローバルロガーを設定
func Init(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		// 開発時は見やすいコンソール出力
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	log.Logger = log.With().Caller().Logger()
}
