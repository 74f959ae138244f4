package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// respondError サービスのエラーをHTTPレスポンスに変換
func respondError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError
	var integrityErr *services.IntegrityError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  services.ErrValidation.Error(),
			"fields": validationErr.Fields,
		})
	case errors.As(err, &integrityErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  services.ErrIntegrity.Error(),
			"fields": gin.H{integrityErr.Field: integrityErr.Message},
		})
	case errors.Is(err, services.ErrIntegrity):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "見つかりません"})
	case errors.Is(err, services.ErrAuthorization):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("リクエストの処理に失敗しました")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
	}
}

// respondBindingError リクエストのバインドエラーをフィールド単位のエラーとして返す
func respondBindingError(ctx *gin.Context, err error) {
	fields := map[string]string{}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			fields[strings.ToLower(fe.Field())] = bindingMessage(fe)
		}
	} else {
		fields["non_field_errors"] = "リクエストの形式が正しくありません"
	}

	respondError(ctx, &services.ValidationError{Fields: fields})
}

// bindingMessage 検証タグごとのメッセージ
func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "この項目は必須です"
	case "email":
		return "有効なメールアドレスを入力してください"
	case "min":
		return fmt.Sprintf("%s文字以上で入力してください", fe.Param())
	case "max":
		return fmt.Sprintf("%s文字以内で入力してください", fe.Param())
	default:
		return "値が正しくありません"
	}
}

// currentUser 認証ミドルウェアが保存したユーザーを取得
func currentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return nil, false
	}
	return user, true
}
