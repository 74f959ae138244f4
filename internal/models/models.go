package models

import (
	"time"
)

// Entry 日記エントリーモデル
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	ImageURL  string    `json:"image"`
	ImageKey  string    `json:"-"` // ストレージ上のキー (削除用)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// リレーション
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Tags []Tag `json:"tags" gorm:"many2many:entry_tags;constraint:OnDelete:CASCADE;"`
}

// EntryTag エントリーとタグの中間テーブル
type EntryTag struct {
	EntryID uint `gorm:"primaryKey"`
	TagID   uint `gorm:"primaryKey"`
}

// TableName テーブル名指定
func (EntryTag) TableName() string {
	return "entry_tags"
}

// AuthToken ログインセッション
// Key は発行したJWTの jti と一致する
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"column:token_key;size:64;uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// All マイグレーション対象のモデル (依存順)
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Entry{},
		&AuthToken{},
	}
}
