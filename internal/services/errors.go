package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/repository"
)

var (
	// ErrValidation 入力値が不正
	ErrValidation = errors.New("入力内容が正しくありません")
	// ErrAuthorization 認証情報またはトークンが不正
	ErrAuthorization = errors.New("認証に失敗しました")
	// ErrIntegrity 一意制約違反
	ErrIntegrity = errors.New("既に登録されています")
	// ErrNotFound 対象が存在しない、または呼び出し元の所有ではない
	ErrNotFound = errors.New("見つかりません")
)

// ValidationError フィールド単位のエラーを持つ検証エラー
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError 1フィールドの検証エラーを作成
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, ", ") + ")"
}

// Unwrap errors.Is(err, ErrValidation) を成立させる
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IntegrityError 一意制約違反のフィールドを持つエラー
type IntegrityError struct {
	Field   string
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap errors.Is(err, ErrIntegrity) を成立させる
func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// mapRepoError リポジトリのエラーをサービスのエラーに変換
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrIntegrity
	default:
		return err
	}
}
