package repository

import (
	"github.com/SketchShifter/journal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRepository 日記エントリーに関するデータベース操作を行うインターフェース
// 参照系はすべて所有者のIDで絞り込む
type EntryRepository interface {
	Create(entry *models.Entry, tagNames []string) error
	FindByID(id, userID uint) (*models.Entry, error)
	ListByUser(userID uint) ([]models.Entry, error)
	Update(entry *models.Entry, tagNames *[]string) error
	Delete(id, userID uint) error
	ImageKeysByUser(userID uint) ([]string, error)
}

// entryRepository EntryRepositoryの実装
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository EntryRepositoryを作成
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id ASC")
}

// Create エントリーとタグの関連付けを1つのトランザクションで作成
func (r *entryRepository) Create(entry *models.Entry, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return translate(err)
		}
		return replaceTags(tx, entry.ID, tagNames)
	})
}

// FindByID 所有者の範囲でエントリーを検索
func (r *entryRepository) FindByID(id, userID uint) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.
		Where("user_id = ?", userID).
		Preload("Tags", preloadTags).
		First(&entry, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// ListByUser ユーザーのエントリー一覧を作成順で取得
func (r *entryRepository) ListByUser(userID uint) ([]models.Entry, error) {
	entries := []models.Entry{}
	if err := r.db.
		Where("user_id = ?", userID).
		Preload("Tags", preloadTags).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Update エントリーを更新
// tagNames が nil の場合はタグに触れない。空スライスの場合はすべて外す
func (r *entryRepository) Update(entry *models.Entry, tagNames *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(entry).Error; err != nil {
			return translate(err)
		}
		if tagNames == nil {
			return nil
		}
		return replaceTags(tx, entry.ID, *tagNames)
	})
}

// Delete 所有者の範囲でエントリーを削除
func (r *entryRepository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Entry{}).Select("id").Where("id = ? AND user_id = ?", id, userID)
		if err := tx.Where("entry_id IN (?)", owned).Delete(&models.EntryTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ?", userID).Delete(&models.Entry{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ImageKeysByUser ユーザーのエントリーに保存された画像キーを取得
func (r *entryRepository) ImageKeysByUser(userID uint) ([]string, error) {
	var keys []string
	if err := r.db.Model(&models.Entry{}).
		Where("user_id = ? AND image_key <> ''", userID).
		Pluck("image_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// replaceTags トランザクション内でタグを get-or-create して付け替える
func replaceTags(tx *gorm.DB, entryID uint, tagNames []string) error {
	tags := &tagRepository{db: tx}

	tagIDs := make([]uint, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := tags.FindOrCreate(name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	return tags.AttachTagsToEntry(entryID, tagIDs)
}
