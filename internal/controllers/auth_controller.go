package controllers

import (
	"errors"
	"net/http"

	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthController 認証に関するコントローラー
type AuthController struct {
	authService services.AuthService
}

// NewAuthController AuthControllerを作成
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse ログインレスポンス
type TokenResponse struct {
	Token string `json:"token"`
}

// Login ログイン
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	_, token, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthorization) {
			// どの項目が誤っているかは返さない
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "提供された認証情報では認証できません"})
			return
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout 現在のセッションを破棄
func (c *AuthController) Logout(ctx *gin.Context) {
	token := ctx.GetString("token")

	if err := c.authService.Logout(token); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
