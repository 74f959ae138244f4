package services_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
		},
		Storage: config.StorageConfig{
			Driver:        "memory",
			MaxUploadSize: 1 << 20,
		},
	}
}

func newEntry(userID uint, title string) *models.Entry {
	return &models.Entry{Title: title, Content: "content of " + title, UserID: userID}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }

func tagsPtr(names ...string) *[]string {
	if names == nil {
		names = []string{}
	}
	return &names
}

func tagNames(entry *models.Entry) []string {
	names := make([]string, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		names = append(names, tag.Name)
	}
	return names
}
