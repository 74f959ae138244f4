package controllers

import (
	"time"

	"github.com/SketchShifter/journal_backend/internal/models"
)

// UserResponse ユーザーのレスポンス (パスワードは含めない)
type UserResponse struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagResponse タグのレスポンス
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EntryResponse エントリーのレスポンス
type EntryResponse struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Tags      []TagResponse `json:"tags"`
	Image     *string       `json:"image"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ImageResponse 画像アップロードのレスポンス
type ImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func newTagResponses(tags []models.Tag) []TagResponse {
	res := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return res
}

func newEntryResponse(entry *models.Entry) EntryResponse {
	res := EntryResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		Tags:      newTagResponses(entry.Tags),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
	if entry.ImageURL != "" {
		image := entry.ImageURL
		res.Image = &image
	}
	return res
}

func newEntryResponses(entries []models.Entry) []EntryResponse {
	res := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		res = append(res, newEntryResponse(&entries[i]))
	}
	return res
}
