package controllers

import (
	"net/http"
	"strconv"

	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// EntryController 日記エントリーに関するコントローラー
type EntryController struct {
	entryService  services.EntryService
	exportService services.ExportService
}

// NewEntryController EntryControllerを作成
func NewEntryController(entryService services.EntryService, exportService services.ExportService) *EntryController {
	return &EntryController{
		entryService:  entryService,
		exportService: exportService,
	}
}

// TagRequest タグの指定
type TagRequest struct {
	Name string `json:"name"`
}

// EntryRequest エントリーの作成・更新リクエスト
// 所有者やタイムスタンプはバインドしない
type EntryRequest struct {
	Title   *string       `json:"title"`
	Content *string       `json:"content"`
	Tags    *[]TagRequest `json:"tags"`
}

func (r *EntryRequest) toInput() services.EntryInput {
	input := services.EntryInput{
		Title:   r.Title,
		Content: r.Content,
	}
	if r.Tags != nil {
		names := make([]string, 0, len(*r.Tags))
		for _, tag := range *r.Tags {
			names = append(names, tag.Name)
		}
		input.Tags = &names
	}
	return input
}

// parseID パスパラメータのIDを解析
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return 0, false
	}
	return uint(id), true
}

// List 自分のエントリー一覧を取得
func (c *EntryController) List(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	entries, err := c.entryService.List(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newEntryResponses(entries))
}

// Create 新しいエントリーを作成
func (c *EntryController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	entry, err := c.entryService.Create(user.ID, req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newEntryResponse(entry))
}

// GetByID 自分のエントリーを取得
func (c *EntryController) GetByID(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	entry, err := c.entryService.GetByID(user.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newEntryResponse(entry))
}

// Replace エントリーを更新 (PUT)
func (c *EntryController) Replace(ctx *gin.Context) {
	c.update(ctx, false)
}

// Patch エントリーを部分更新 (PATCH)
func (c *EntryController) Patch(ctx *gin.Context) {
	c.update(ctx, true)
}

func (c *EntryController) update(ctx *gin.Context, partial bool) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	entry, err := c.entryService.Update(user.ID, id, req.toInput(), partial)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newEntryResponse(entry))
}

// Delete エントリーを削除
func (c *EntryController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.entryService.Delete(ctx.Request.Context(), user.ID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UploadImage エントリーに画像をアップロード
func (c *EntryController) UploadImage(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	// マルチパートフォームを解析
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(ctx, services.NewValidationError("image", "マルチパートフォームの解析に失敗しました"))
		return
	}

	file, _, err := ctx.Request.FormFile("image")
	if err != nil {
		respondError(ctx, services.NewValidationError("image", "ファイルが送信されていません"))
		return
	}
	defer file.Close()

	entry, err := c.entryService.UploadImage(ctx.Request.Context(), user.ID, id, file)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ImageResponse{ID: entry.ID, Image: entry.ImageURL})
}

// ExportPDF 自分のエントリーをPDFでダウンロード
func (c *EntryController) ExportPDF(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	data, err := c.exportService.EntriesPDF(user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="journal.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}
