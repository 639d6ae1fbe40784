package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"docsummary_backend/internal/feature/auth/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc       func(ctx context.Context, email, password string) error
	VerifyFunc         func(ctx context.Context, email, code string) error
	LoginFunc          func(ctx context.Context, email, password string) (string, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, code, newPassword string) error
	ChangePasswordFunc func(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", errors.New("login failed")
}

func (m *mockAuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *mockAuthUsecase) ResetPassword(ctx context.Context, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, code, newPassword)
	}
	return nil
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, email, oldPassword, newPassword, newPassword2)
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: verification code issued",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockFunc:       func(ctx context.Context, email, password string) error { return nil },
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "verification code sent"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "test@example.com", "password": "short"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: email already registered",
			requestBody: gin.H{"email": "existing@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password string) error {
				return usecase.ErrEmailAlreadyRegistered
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "email already registered"},
		},
		{
			name:        "failure: mail delivery error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password string) error {
				return errors.New("smtp: connection refused")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   gin.H{"error": "failed to send verification code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RegisterFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/register", handler.Register)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Verify(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, code string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: code accepted",
			requestBody:    gin.H{"email": "test@example.com", "code": "123456"},
			mockFunc:       func(ctx context.Context, email, code string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "email verified, registration complete"},
		},
		{
			name:           "failure: code not six digits",
			requestBody:    gin.H{"email": "test@example.com", "code": "123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: wrong code",
			requestBody: gin.H{"email": "test@example.com", "code": "999999"},
			mockFunc: func(ctx context.Context, email, code string) error {
				return usecase.ErrInvalidCode
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid code"},
		},
		{
			name:        "failure: expired code",
			requestBody: gin.H{"email": "test@example.com", "code": "123456"},
			mockFunc: func(ctx context.Context, email, code string) error {
				return usecase.ErrCodeExpired
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "code expired"},
		},
		{
			name:        "failure: storage error",
			requestBody: gin.H{"email": "test@example.com", "code": "123456"},
			mockFunc: func(ctx context.Context, email, code string) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "verification failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{VerifyFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/verify", handler.Verify)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password string) (string, error) {
				return "dummy-jwt-token", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"access_token": "dummy-jwt-token", "token_type": "bearer"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "test@example.com"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: wrong credentials masked",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid credentials"},
		},
		{
			name:        "failure: internal error also masked",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("db down")
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid credentials"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&mockAuthUsecase{})

	router := gin.New()
	router.POST("/auth/logout", handler.Logout)

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: reset code issued",
			requestBody:    gin.H{"email": "test@example.com"},
			mockFunc:       func(ctx context.Context, email string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "reset code sent"},
		},
		{
			name:        "failure: unknown email",
			requestBody: gin.H{"email": "ghost@example.com"},
			mockFunc: func(ctx context.Context, email string) error {
				return usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   gin.H{"error": "no such user"},
		},
		{
			name:        "failure: mail delivery error",
			requestBody: gin.H{"email": "test@example.com"},
			mockFunc: func(ctx context.Context, email string) error {
				return errors.New("smtp: connection refused")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   gin.H{"error": "failed to send reset code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{ForgotPasswordFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/forgot-password", handler.ForgotPassword)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, code, newPassword string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: password reset",
			requestBody:    gin.H{"code": "123456", "new_password": "newpassword"},
			mockFunc:       func(ctx context.Context, code, newPassword string) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "password has been reset"},
		},
		{
			name:           "failure: short new password",
			requestBody:    gin.H{"code": "123456", "new_password": "short"},
			mockFunc:       nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid or expired code",
			requestBody: gin.H{"code": "999999", "new_password": "newpassword"},
			mockFunc: func(ctx context.Context, code, newPassword string) error {
				return usecase.ErrInvalidOrExpiredCode
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid or expired code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{ResetPasswordFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/reset-password", handler.ResetPassword)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name: "success: password changed",
			requestBody: gin.H{
				"old_password":  "oldpassword",
				"new_password":  "newpassword",
				"new_password2": "newpassword",
			},
			mockFunc: func(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error {
				if email != "test@example.com" {
					t.Errorf("expected email from context, got %q", email)
				}
				return nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"message": "password changed successfully"},
		},
		{
			name: "failure: new passwords do not match",
			requestBody: gin.H{
				"old_password":  "oldpassword",
				"new_password":  "newpassword",
				"new_password2": "different1",
			},
			mockFunc: func(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error {
				return usecase.ErrPasswordMismatch
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "new passwords do not match"},
		},
		{
			name: "failure: wrong old password",
			requestBody: gin.H{
				"old_password":  "wrongpassword",
				"new_password":  "newpassword",
				"new_password2": "newpassword",
			},
			mockFunc: func(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error {
				return usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "old password is incorrect"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{ChangePasswordFunc: tt.mockFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			// 認証ミドルウェアの代わりにコンテキストへメールアドレスを注入
			router.POST("/auth/change-password", func(c *gin.Context) {
				c.Set(jwtmw.ContextEmail, "test@example.com")
			}, handler.ChangePassword)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/change-password", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}
