package repository

import (
	"time"

	"github.com/SketchShifter/journal_backend/internal/models"

	"gorm.io/gorm"
)

// TokenRepository ログインセッションに関するデータベース操作を行うインターフェース
type TokenRepository interface {
	Create(token *models.AuthToken) error
	FindByKey(key string) (*models.AuthToken, error)
	DeleteByKey(key string) error
	DeleteExpired(userID uint, now time.Time) error
	CountAllExpired(now time.Time) (int64, error)
	PurgeExpired(now time.Time, limit int) (int64, error)
}

// tokenRepository TokenRepositoryの実装
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository TokenRepositoryを作成
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create セッションを作成
func (r *tokenRepository) Create(token *models.AuthToken) error {
	return translate(r.db.Create(token).Error)
}

// FindByKey キーでセッションを検索
func (r *tokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Where("token_key = ?", key).First(&token).Error; err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// DeleteByKey セッションを削除
func (r *tokenRepository) DeleteByKey(key string) error {
	result := r.db.Where("token_key = ?", key).Delete(&models.AuthToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired 期限切れのセッションを削除
func (r *tokenRepository) DeleteExpired(userID uint, now time.Time) error {
	return r.db.Where("user_id = ? AND expires_at < ?", userID, now).Delete(&models.AuthToken{}).Error
}

// CountAllExpired 全ユーザーの期限切れセッション数を取得
func (r *tokenRepository) CountAllExpired(now time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.AuthToken{}).Where("expires_at < ?", now).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PurgeExpired 期限切れのセッションを古い順に最大 limit 件削除
func (r *tokenRepository) PurgeExpired(now time.Time, limit int) (int64, error) {
	var ids []uint
	if err := r.db.Model(&models.AuthToken{}).
		Where("expires_at < ?", now).
		Order("expires_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.Delete(&models.AuthToken{}, ids)
	return result.RowsAffected, result.Error
}
