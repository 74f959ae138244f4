package services

import (
	"context"
	"errors"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// unusablePassword パスワード未設定のユーザーに保存する値 (bcryptとして照合できない)
const unusablePassword = "!"

// UserAttrs ユーザー作成時の追加属性
type UserAttrs struct {
	Username    string
	IsActive    *bool // nil の場合は有効
	IsStaff     bool
	IsSuperuser bool
}

// ProfileInput プロフィール更新内容 (nil のフィールドは変更しない)
type ProfileInput struct {
	Email    *string
	Username *string
	Password *string
}

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	CreateUser(email, password string, attrs UserAttrs) (*models.User, error)
	CreateSuperuser(email, password string, attrs UserAttrs) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, input ProfileInput) (*models.User, error)
	Delete(ctx context.Context, userID uint) error
}

// userService UserServiceの実装
type userService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
	storage   ImageStorage
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository, entryRepo repository.EntryRepository, storage ImageStorage) UserService {
	return &userService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		storage:   storage,
	}
}

// NormalizeEmail メールアドレスのドメイン部分を小文字にする
// ローカル部の大文字小文字はそのまま残す
func NormalizeEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	at := strings.LastIndex(trimmed, "@")
	if at < 0 {
		return email
	}
	return trimmed[:at] + "@" + strings.ToLower(trimmed[at+1:])
}

// hashPassword パスワードをハッシュ化
func hashPassword(password string) (string, error) {
	if password == "" {
		return unusablePassword, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CreateUser 一般ユーザーを作成
func (s *userService) CreateUser(email, password string, attrs UserAttrs) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, NewValidationError("email", "メールアドレスは必須です")
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if attrs.IsActive != nil {
		isActive = *attrs.IsActive
	}

	user := &models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: hashedPassword,
		Username:     attrs.Username,
		IsActive:     isActive,
		IsStaff:      attrs.IsStaff,
		IsSuperuser:  attrs.IsSuperuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &IntegrityError{Field: "email", Message: "このメールアドレスは既に使用されています"}
		}
		return nil, err
	}

	return user, nil
}

// CreateSuperuser 管理者ユーザーを作成
func (s *userService) CreateSuperuser(email, password string, attrs UserAttrs) (*models.User, error) {
	attrs.IsStaff = true
	attrs.IsSuperuser = true
	return s.CreateUser(email, password, attrs)
}

// GetByID IDでユーザーを取得
func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return user, nil
}

// UpdateProfile 自分のプロフィールを更新
func (s *userService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, NewValidationError("email", "メールアドレスは必須です")
		}
		user.Email = NormalizeEmail(*input.Email)
	}
	if input.Username != nil {
		if strings.TrimSpace(*input.Username) == "" {
			return nil, NewValidationError("username", "ユーザー名は必須です")
		}
		user.Username = *input.Username
	}
	if input.Password != nil {
		hashedPassword, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &IntegrityError{Field: "email", Message: "このメールアドレスは既に使用されています"}
		}
		return nil, err
	}

	return user, nil
}

// Delete ユーザーを削除 (エントリーとセッションも削除される)
func (s *userService) Delete(ctx context.Context, userID uint) error {
	imageKeys, err := s.entryRepo.ImageKeysByUser(userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return mapRepoError(err)
	}

	// 画像の削除に失敗してもユーザー削除は成功とする
	for _, key := range imageKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Uint("user_id", userID).Msg("画像の削除に失敗しました")
		}
	}

	return nil
}
