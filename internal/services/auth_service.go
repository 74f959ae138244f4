package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SketchShifter/journal_backend/internal/config"
	"github.com/SketchShifter/journal_backend/internal/models"
	"github.com/SketchShifter/journal_backend/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Login(email, password string) (*models.User, string, error)
	Logout(tokenString string) error
	ValidateToken(tokenString string) (*Claims, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	config    *config.Config
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		config:    cfg,
	}
}

// Claims JWTのペイロード
// StandardClaims.Id (jti) がセッションのキーになる
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// Login ログインしてセッショントークンを発行
// 失敗理由 (メール不明 / パスワード不一致 / 無効ユーザー) は区別しない
func (s *authService) Login(email, password string) (*models.User, string, error) {
	// ユーザーを検索
	user, err := s.userRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAuthorization
		}
		return nil, "", err
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrAuthorization
	}
	if !user.CanAuthenticate() {
		return nil, "", ErrAuthorization
	}

	now := time.Now()
	if err := s.tokenRepo.DeleteExpired(user.ID, now); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("期限切れセッションの削除に失敗しました")
	}

	// セッションを作成
	session := &models.AuthToken{
		Key:       uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.config.Auth.TokenExpiry),
	}
	if err := s.tokenRepo.Create(session); err != nil {
		return nil, "", fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}

	token, err := s.generateToken(session, now)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout セッションを破棄
func (s *authService) Logout(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.tokenRepo.DeleteByKey(claims.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAuthorization
		}
		return err
	}
	return nil
}

// ValidateToken トークンの署名と有効期限を検証
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 署名方法を確認
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.Id == "" {
		return nil, ErrAuthorization
	}

	return claims, nil
}

// GetUserFromToken トークンからユーザーを取得
func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// セッションが残っているか確認
	session, err := s.tokenRepo.FindByKey(claims.Id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthorization
		}
		return nil, err
	}
	if session.UserID != claims.UserID || time.Now().After(session.ExpiresAt) {
		return nil, ErrAuthorization
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthorization
		}
		return nil, err
	}
	if !user.CanAuthenticate() {
		return nil, ErrAuthorization
	}

	return user, nil
}

// generateToken セッションに対応するJWTを生成
func (s *authService) generateToken(session *models.AuthToken, now time.Time) (string, error) {
	claims := &Claims{
		UserID: session.UserID,
		StandardClaims: jwt.StandardClaims{
			Id:        session.Key,
			ExpiresAt: session.ExpiresAt.Unix(),
			IssuedAt:  now.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
