package services

import (
	"context"
	"fmt"

	"github.com/SketchShifter/journal_backend/internal/config"
)

// StoredImage 保存した画像の参照
type StoredImage struct {
	URL string // クライアントに返すURL
	Key string // 削除時に使うストレージ上のキー
}

// ImageStorage 画像ファイルの保存先
type ImageStorage interface {
	Save(ctx context.Context, data []byte, fileName, contentType string) (*StoredImage, error)
	Delete(ctx context.Context, key string) error
}

// NewImageStorage 設定に応じた ImageStorage を作成
func NewImageStorage(cfg *config.Config) (ImageStorage, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		return NewFileService(cfg)
	case "cloudinary":
		return NewCloudinaryService(cfg)
	case "s3":
		return NewS3Service(cfg)
	default:
		return nil, fmt.Errorf("未対応のストレージドライバです: %s", cfg.Storage.Driver)
	}
}
