// Package testutil テスト用のデータベースと画像ストレージ
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB テーブル作成済みのインメモリSQLiteを返す
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// インメモリDBは接続ごとに別物になるため1本に固定する
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// MemoryStorage メモリ上に画像を保持する ImageStorage
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	SaveErr error
}

// NewMemoryStorage MemoryStorageを作成
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: map[string][]byte{}}
}

// Save 画像を保持
func (s *MemoryStorage) Save(_ context.Context, data []byte, fileName, _ string) (*services.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	key := "entries/" + fileName
	s.Objects[key] = data
	return &services.StoredImage{URL: fmt.Sprintf("https://images.test/%s", key), Key: key}, nil
}

// Delete 画像を削除
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

// Len 保持している画像の数
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}
