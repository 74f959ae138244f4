package models

import (
	"time"
)

// User ユーザーモデル
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	IsStaff      bool      `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// リレーション
	Entries []Entry     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Tokens  []AuthToken `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

// CanAuthenticate ログインおよびトークン認証が可能か
func (u *User) CanAuthenticate() bool {
	return u != nil && u.IsActive
}

// IsAdmin 管理者権限を持つか
func (u *User) IsAdmin() bool {
	return u != nil && (u.IsStaff || u.IsSuperuser)
}
