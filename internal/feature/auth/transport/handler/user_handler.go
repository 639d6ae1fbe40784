package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"docsummary_backend/internal/api"
	"docsummary_backend/internal/feature/auth/domain/entity"
	"docsummary_backend/internal/feature/auth/transport/http/dto"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// UserUsecase はプロフィール操作のユースケースを定義します。
type UserUsecase interface {
	// Profile は認証済みユーザーのプロフィールを返します。
	Profile(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile は姓名を更新し、更新後のユーザーを返します。
	UpdateProfile(ctx context.Context, email, firstName, lastName string) (*entity.User, error)
}

// UserHandler は/users/meのHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Me はGET /users/meを処理し、認証済みユーザーのプロフィールを返します。
func (h *UserHandler) Me(c *gin.Context) {
	email := c.GetString(jwtmw.ContextEmail)
	user, err := h.users.Profile(c.Request.Context(), email)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "email", email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// UpdateMe はPUT /users/meを処理し、姓名を更新します。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	email := c.GetString(jwtmw.ContextEmail)
	user, err := h.users.UpdateProfile(c.Request.Context(), email, req.FirstName, req.LastName)
	if err != nil {
		slog.Error("profile update failed", "error", err, "email", email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
