package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository タグに関するデータベース操作を行うインターフェース
type TagRepository interface {
	FindOrCreate(name string) (*models.Tag, error)
	List() ([]models.Tag, error)
	AttachTagsToEntry(entryID uint, tagIDs []uint) error
	DetachTagsFromEntry(entryID uint) error
}

// tagRepository TagRepositoryの実装
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository TagRepositoryを作成
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate タグを検索または作成
// 同名タグの同時作成は ON CONFLICT DO NOTHING で吸収し、最後に名前で読み直す
func (r *tagRepository) FindOrCreate(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("タグ名は空にできません")
	}

	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// タグが見つからない場合は新規作成
	return r.insertTag(name)
}

// insertTag タグを作成し、既に存在した場合は既存の行を返す
func (r *tagRepository) insertTag(name string) (*models.Tag, error) {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&models.Tag{Name: name}).Error; err != nil {
		return nil, translate(err)
	}

	return r.findCommittedByName(name)
}

// findCommittedByName 他のトランザクションが確定した行も見えるようロック付きで読み直す
// SQLite はロック句を持たず、書き込みは直列化される
func (r *tagRepository) findCommittedByName(name string) (*models.Tag, error) {
	query := r.db
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}

	var tag models.Tag
	if err := query.Where("name = ?", name).First(&tag).Error; err != nil {
		// 見つからなくてもエントリー側の 404 にはしない
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("タグ %q を作成できませんでした", name)
		}
		return nil, err
	}
	return &tag, nil
}

// List タグ一覧を取得
func (r *tagRepository) List() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTagsToEntry エントリーのタグを置き換える
func (r *tagRepository) AttachTagsToEntry(entryID uint, tagIDs []uint) error {
	// 既存のタグをすべて削除
	if err := r.DetachTagsFromEntry(entryID); err != nil {
		return err
	}

	// 新しいタグを追加 (重複は1件にまとめる)
	seen := make(map[uint]bool, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		if err := r.db.Create(&models.EntryTag{EntryID: entryID, TagID: tagID}).Error; err != nil {
			return err
		}
	}

	return nil
}

// DetachTagsFromEntry エントリーからすべてのタグの関連付けを解除
func (r *tagRepository) DetachTagsFromEntry(entryID uint) error {
	return r.db.Where("entry_id = ?", entryID).Delete(&models.EntryTag{}).Error
}
