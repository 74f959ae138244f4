package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/config"
)

// entryImageDir エントリー画像を保存するサブディレクトリ
const entryImageDir = "entries"

// fileService ローカルディスクに画像を保存する ImageStorage
type fileService struct {
	uploadRoot string
	baseURL    string
}

// NewFileService ローカルストレージを作成
func NewFileService(cfg *config.Config) (ImageStorage, error) {
	uploadRoot := cfg.Storage.UploadDir

	// 基本的なアップロードディレクトリ構造を作成
	if err := os.MkdirAll(filepath.Join(uploadRoot, entryImageDir), 0755); err != nil {
		return nil, fmt.Errorf("アップロードディレクトリの作成に失敗しました: %w", err)
	}

	return &fileService{
		uploadRoot: uploadRoot,
		baseURL:    strings.TrimRight(cfg.Storage.BaseURL, "/"),
	}, nil
}

// Save ファイルを保存
func (s *fileService) Save(_ context.Context, data []byte, fileName, _ string) (*StoredImage, error) {
	if strings.ContainsAny(fileName, `/\`) || fileName == "" {
		return nil, errors.New("無効なファイル名です")
	}

	key := path.Join(entryImageDir, fileName)
	if err := os.WriteFile(filepath.Join(s.uploadRoot, filepath.FromSlash(key)), data, 0644); err != nil {
		return nil, fmt.Errorf("ファイルの保存に失敗しました: %w", err)
	}

	return &StoredImage{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}

// Delete ファイルを削除
func (s *fileService) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	// アップロードディレクトリの外は触らない
	cleaned := path.Clean("/" + key)[1:]
	if !strings.HasPrefix(cleaned, entryImageDir+"/") {
		return fmt.Errorf("無効なキーです: %s", key)
	}

	if err := os.Remove(filepath.Join(s.uploadRoot, filepath.FromSlash(cleaned))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ファイルの削除に失敗しました: %w", err)
	}
	return nil
}
