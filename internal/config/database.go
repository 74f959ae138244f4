package config

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormLogger GORMのログを zerolog に流すロガー
func newGormLogger() logger.Interface {
	level := logger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}

	return logger.New(
		stdlog.New(log.Logger.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             time.Second, // 1秒以上のクエリを遅いと判断
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // 404 はリポジトリ側で扱う
			Colorful:                  false,
		},
	)
}

// Dialector 設定に応じたGORMダイアレクタを返す
func Dialector(cfg *Config) (gorm.Dialector, error) {
	db := cfg.Database
	switch db.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			db.Username, db.Password, db.Host, db.Port, db.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.Username, db.Password, db.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(db.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("未対応のデータベースドライバです: %s", db.Driver)
	}
}

// GormConfig 共通のGORM設定
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: newGormLogger(),
		// 一意制約違反を gorm.ErrDuplicatedKey に変換する
		TranslateError: true,
	}
}

// InitDB データベース接続を初期化
func InitDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("データベースに接続中")

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, err
	}

	// 接続プールの設定
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 接続テスト
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("データベース接続テストに失敗: %w", err)
	}

	log.Info().Msg("データベース接続に成功しました")

	return db, nil
}

// WaitForDB データベースが応答するまで待機する
func WaitForDB(cfg *Config) (*gorm.DB, error) {
	deadline := time.Now().Add(cfg.Database.WaitTimeout)
	for {
		db, err := InitDB(cfg)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("データベースが利用可能になりませんでした: %w", err)
		}
		log.Warn().Err(err).Msg("データベースが利用できません、再試行します...")
		time.Sleep(time.Second)
	}
}
