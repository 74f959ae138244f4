package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound レコードが存在しない
	ErrNotFound = errors.New("レコードが見つかりません")
	// ErrDuplicate 一意制約違反
	ErrDuplicate = errors.New("一意制約に違反しています")
)

// translate GORMのエラーをリポジトリのエラーに変換
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
