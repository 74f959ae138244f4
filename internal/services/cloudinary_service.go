package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// cloudinaryService Cloudinaryに画像を保存する ImageStorage
type cloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryService CloudinaryServiceを作成
func NewCloudinaryService(cfg *config.Config) (ImageStorage, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	return &cloudinaryService{
		cld:    cld,
		folder: cfg.Cloudinary.Folder,
	}, nil
}

// Save 画像をアップロード
func (s *cloudinaryService) Save(ctx context.Context, data []byte, fileName, _ string) (*StoredImage, error) {
	uploadParams := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploadParams)
	if err != nil {
		return nil, fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %s", result.Error.Message)
	}

	return &StoredImage{
		URL: result.SecureURL,
		Key: result.PublicID,
	}, nil
}

// Delete 画像を削除
func (s *cloudinaryService) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	}); err != nil {
		return fmt.Errorf("Cloudinaryからの削除に失敗しました: %w", err)
	}

	return nil
}
