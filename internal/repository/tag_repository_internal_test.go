package repository

import (
	"errors"
	"testing"

	"github.com/SketchShifter/journal_backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTagTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.Tag{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// 検索後に別の作成者が同名タグを確定させた場合、挿入は衝突し既存の行を返す
func TestTagRepository_InsertTag_ExistingRow(t *testing.T) {
	db := newTagTestDB(t)
	repo := &tagRepository{db: db}

	existing := &models.Tag{Name: "shared"}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	tag, err := repo.insertTag("shared")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if tag.ID != existing.ID {
		t.Errorf("id = %d, want existing %d", tag.ID, existing.ID)
	}

	var count int64
	db.Model(&models.Tag{}).Count(&count)
	if count != 1 {
		t.Errorf("tag count = %d, want 1", count)
	}
}

// 読み直しで見つからない場合も ErrNotFound は返さない (エントリーの 404 と区別する)
func TestTagRepository_FindCommittedByName_MissIsNotNotFound(t *testing.T) {
	repo := &tagRepository{db: newTagTestDB(t)}

	_, err := repo.findCommittedByName("missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("miss reported as ErrNotFound: %v", err)
	}
}
