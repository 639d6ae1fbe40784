// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"docsummary_backend/internal/api"
	"docsummary_backend/internal/feature/auth/transport/http/dto"
	"docsummary_backend/internal/feature/auth/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は確認コードを発行してメール送信します。ユーザーはまだ作成されません。
	Register(ctx context.Context, email, password string) error
	// Verify は確認コードを消費し、成功時にユーザーを作成します。
	Verify(ctx context.Context, email, code string) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// ForgotPassword はリセットコードを発行してメール送信します。
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword はリセットコードを消費して新しいパスワードを保存します。
	ResetPassword(ctx context.Context, code, newPassword string) error
	// ChangePassword はログイン済みユーザーのパスワードを変更します。
	ChangePassword(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - 成功時は201を返却し、確認コードのメール配送をトリガー
// - 登録済みメールアドレスは409を返却
// - メール配送失敗は502を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyRegistered) {
			slog.Warn("register rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
			return
		}
		slog.Error("register failed", "error", err, "email", req.Email)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to send verification code"})
		return
	}
	slog.Info("verification code sent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "verification code sent"})
}

// Verify はメール確認APIエンドポイントを処理します。
// コード不一致・期限切れはともに400を返却します。
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("verify validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid code"})
		case errors.Is(err, usecase.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "code expired"})
		default:
			slog.Error("verify failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "verification failed"})
		}
		return
	}
	slog.Info("registration completed", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "email verified, registration complete"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// ユーザー不在・未検証・パスワード不一致はすべて同一メッセージの400を返却します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid credentials"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout はログアウトAPIエンドポイントを処理します。
// ベアラートークン認証ではログアウトはクライアント側の処理（トークン破棄）のため、
// サーバーは204を返すだけです。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ForgotPassword はリセットコード発行APIエンドポイントを処理します。
// 未知のメールアドレスは404を返却します（存在の露呈は仕様で許容されたトレードオフ）。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no such user"})
			return
		}
		slog.Error("forgot-password failed", "error", err, "email", req.Email)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to send reset code"})
		return
	}
	slog.Info("reset code sent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "reset code sent"})
}

// ResetPassword はリセットコード消費APIエンドポイントを処理します。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("reset-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Code, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpiredCode) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or expired code"})
			return
		}
		slog.Error("reset-password failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "password reset failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password has been reset"})
}

// ChangePassword はパスワード変更APIエンドポイントを処理します。認証必須です。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	email := c.GetString(jwtmw.ContextEmail)
	err := h.auth.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword, req.NewPassword2)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "new passwords do not match"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "old password is incorrect"})
		default:
			slog.Error("change-password failed", "error", err, "email", email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "password change failed"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password changed successfully"})
}
