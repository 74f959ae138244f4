package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// s3Service S3 (互換ストレージを含む) に画像を保存する ImageStorage
type s3Service struct {
	client        *s3.S3
	uploader      *s3manager.Uploader
	bucket        string
	publicBaseURL string
}

// NewS3Service S3Serviceを作成
func NewS3Service(cfg *config.Config) (ImageStorage, error) {
	if cfg.AWS.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET が設定されていません")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWS.Region),
	}
	if cfg.AWS.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWS.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの初期化に失敗しました: %w", err)
	}

	return &s3Service{
		client:        s3.New(sess),
		uploader:      s3manager.NewUploader(sess),
		bucket:        cfg.AWS.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.AWS.PublicBaseURL, "/"),
	}, nil
}

// Save 画像をアップロード
func (s *s3Service) Save(ctx context.Context, data []byte, fileName, contentType string) (*StoredImage, error) {
	key := path.Join(entryImageDir, fileName)

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("S3へのアップロードに失敗しました: %w", err)
	}

	url := result.Location
	if s.publicBaseURL != "" {
		url = s.publicBaseURL + "/" + key
	}

	return &StoredImage{URL: url, Key: key}, nil
}

// Delete 画像を削除
func (s *s3Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if _, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("S3からの削除に失敗しました: %w", err)
	}
	return nil
}
