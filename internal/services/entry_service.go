package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTitleLayout タイトル省略時の日付書式 (例: "14 April, 2024")
	DefaultTitleLayout = "02 January, 2006"

	maxTitleLength   = 255
	maxTagNameLength = 255
)

// EntryInput エントリーの作成・更新内容
// Tags が nil の場合、更新時はタグを変更しない。空スライスはすべて外す
type EntryInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// EntryService 日記エントリーに関するサービスインターフェース
// すべての操作は呼び出し元ユーザーのエントリーに限定される
type EntryService interface {
	List(userID uint) ([]models.Entry, error)
	Create(userID uint, input EntryInput) (*models.Entry, error)
	GetByID(userID, id uint) (*models.Entry, error)
	Update(userID, id uint, input EntryInput, partial bool) (*models.Entry, error)
	Delete(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, file io.Reader) (*models.Entry, error)
}

// entryService EntryServiceの実装
type entryService struct {
	entryRepo     repository.EntryRepository
	storage       ImageStorage
	maxUploadSize int64
	now           func() time.Time
}

// NewEntryService EntryServiceを作成
func NewEntryService(entryRepo repository.EntryRepository, storage ImageStorage, cfg *config.Config) EntryService {
	return &entryService{
		entryRepo:     entryRepo,
		storage:       storage,
		maxUploadSize: cfg.Storage.MaxUploadSize,
		now:           time.Now,
	}
}

// List 自分のエントリー一覧を取得
func (s *entryService) List(userID uint) ([]models.Entry, error) {
	return s.entryRepo.ListByUser(userID)
}

// Create 新しいエントリーを作成 (所有者は常に呼び出し元)
func (s *entryService) Create(userID uint, input EntryInput) (*models.Entry, error) {
	if err := validateEntryInput(input, false); err != nil {
		return nil, err
	}

	// タイトル省略時は作成日
	title := s.now().Format(DefaultTitleLayout)
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, NewValidationError("title", "タイトルを空にすることはできません")
		}
		title = strings.TrimSpace(*input.Title)
	}

	var tagNames []string
	if input.Tags != nil {
		tagNames = *input.Tags
	}

	entry := &models.Entry{
		Title:   title,
		Content: *input.Content,
		UserID:  userID,
	}
	if err := s.entryRepo.Create(entry, tagNames); err != nil {
		return nil, mapRepoError(err)
	}

	// タグを含むエントリーを再取得
	return s.GetByID(userID, entry.ID)
}

// GetByID 自分のエントリーを取得
func (s *entryService) GetByID(userID, id uint) (*models.Entry, error) {
	entry, err := s.entryRepo.FindByID(id, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return entry, nil
}

// Update エントリーを更新
// partial が false (PUT) の場合は content が必須
func (s *entryService) Update(userID, id uint, input EntryInput, partial bool) (*models.Entry, error) {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if err := validateEntryInput(input, partial); err != nil {
		return nil, err
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, NewValidationError("title", "タイトルを空にすることはできません")
		}
		entry.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		entry.Content = *input.Content
	}

	if err := s.entryRepo.Update(entry, input.Tags); err != nil {
		return nil, mapRepoError(err)
	}

	return s.GetByID(userID, id)
}

// Delete 自分のエントリーを削除
func (s *entryService) Delete(ctx context.Context, userID, id uint) error {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(id, userID); err != nil {
		return mapRepoError(err)
	}

	s.deleteImage(ctx, entry.ImageKey)
	return nil
}

// UploadImage エントリーに画像を設定
// 画像として読めないデータの場合はエントリーを変更しない
func (s *entryService) UploadImage(ctx context.Context, userID, id uint, file io.Reader) (*models.Entry, error) {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	// ファイルサイズをチェックしながら読み込む
	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
	}
	if int64(len(data)) > s.maxUploadSize {
		return nil, NewValidationError("image", fmt.Sprintf("ファイルサイズが大きすぎます (最大 %d MB)", s.maxUploadSize/1024/1024))
	}

	format, err := decodeImage(data)
	if err != nil {
		return nil, NewValidationError("image", "有効な画像をアップロードしてください。ファイルが画像でないか、破損しています")
	}

	fileName := uuid.NewString() + imageExtensions[format]
	stored, err := s.storage.Save(ctx, data, fileName, "image/"+format)
	if err != nil {
		return nil, err
	}

	oldKey := entry.ImageKey
	entry.ImageURL = stored.URL
	entry.ImageKey = stored.Key
	if err := s.entryRepo.Update(entry, nil); err != nil {
		s.deleteImage(ctx, stored.Key)
		return nil, mapRepoError(err)
	}

	s.deleteImage(ctx, oldKey)
	return entry, nil
}

// deleteImage 保存済み画像を削除 (失敗はログのみ)
func (s *entryService) deleteImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("画像の削除に失敗しました")
	}
}

// validateEntryInput 入力値を検証
func validateEntryInput(input EntryInput, partial bool) error {
	fields := map[string]string{}

	if input.Content == nil {
		if !partial {
			fields["content"] = "この項目は必須です"
		}
	} else if strings.TrimSpace(*input.Content) == "" {
		fields["content"] = "この項目は空にできません"
	}

	if input.Title != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Title)) > maxTitleLength {
		fields["title"] = fmt.Sprintf("%d文字以内で入力してください", maxTitleLength)
	}

	if input.Tags != nil {
		for _, name := range *input.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				fields["tags"] = "タグ名は空にできません"
				break
			}
			if utf8.RuneCountInString(name) > maxTagNameLength {
				fields["tags"] = fmt.Sprintf("タグ名は%d文字以内で入力してください", maxTagNameLength)
				break
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
