package controllers

import (
	"net/http"

	"github.com/SketchShifter/journal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService services.UserService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUserRequest ユーザー登録リクエスト
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,max=255"`
}

// UpdateUserRequest プロフィール更新リクエスト
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Username *string `json:"username" binding:"omitempty,max=255"`
}

// Create ユーザー登録 (認証不要)
func (c *UserController) Create(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	user, err := c.userService.CreateUser(req.Email, req.Password, services.UserAttrs{
		Username: req.Username,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// GetMe 自分のユーザー情報を取得
func (c *UserController) GetMe(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// ReplaceMe 自分のユーザー情報をすべて更新 (PUT)
func (c *UserController) ReplaceMe(ctx *gin.Context) {
	c.updateMe(ctx, false)
}

// PatchMe 自分のユーザー情報を部分更新 (PATCH)
func (c *UserController) PatchMe(ctx *gin.Context) {
	c.updateMe(ctx, true)
}

func (c *UserController) updateMe(ctx *gin.Context, partial bool) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	if !partial {
		fields := map[string]string{}
		if req.Email == nil {
			fields["email"] = "この項目は必須です"
		}
		if req.Password == nil {
			fields["password"] = "この項目は必須です"
		}
		if req.Username == nil {
			fields["username"] = "この項目は必須です"
		}
		if len(fields) > 0 {
			respondError(ctx, &services.ValidationError{Fields: fields})
			return
		}
	}

	updated, err := c.userService.UpdateProfile(user.ID, services.ProfileInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(updated))
}

// DeleteMe 自分のアカウントを削除
func (c *UserController) DeleteMe(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), user.ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
