package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"docsummary_backend/internal/feature/documents/domain/entity"
	"docsummary_backend/internal/feature/documents/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// mockDocumentsUsecase is a mock implementation of the DocumentsUsecase interface.
type mockDocumentsUsecase struct {
	UploadFunc func(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error)
	ListFunc   func(ctx context.Context, owner string) ([]entity.Document, error)
	GetFunc    func(ctx context.Context, owner string, id uint) (*entity.Document, error)
	DeleteFunc func(ctx context.Context, owner string, id uint, cascade bool) error
}

func (m *mockDocumentsUsecase) Upload(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, owner, filename, data)
	}
	return nil, errors.New("not configured")
}

func (m *mockDocumentsUsecase) List(ctx context.Context, owner string) ([]entity.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, owner)
	}
	return nil, nil
}

func (m *mockDocumentsUsecase) Get(ctx context.Context, owner string, id uint) (*entity.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, owner, id)
	}
	return nil, usecase.ErrDocumentNotFound
}

func (m *mockDocumentsUsecase) Delete(ctx context.Context, owner string, id uint, cascade bool) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, id, cascade)
	}
	return nil
}

func setupDocumentRouter(mockUC *mockDocumentsUsecase) *gin.Engine {
	handler := NewDocumentHandler(mockUC)
	router := gin.New()
	// 認証ミドルウェアの代わりにコンテキストへメールアドレスを注入
	inject := func(c *gin.Context) { c.Set(jwtmw.ContextEmail, "owner@example.com") }
	router.POST("/documents", inject, handler.Upload)
	router.GET("/documents", inject, handler.List)
	router.GET("/documents/:id/content", inject, handler.Content)
	router.DELETE("/documents/:id", inject, handler.Delete)
	return router
}

// multipartBody builds a multipart/form-data payload with a single file field.
func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: document stored", func(t *testing.T) {
		uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mockUC := &mockDocumentsUsecase{
			UploadFunc: func(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error) {
				assert.Equal(t, "owner@example.com", owner)
				assert.Equal(t, "report.pdf", filename)
				assert.Equal(t, []byte("%PDF-1.4"), data)
				return &entity.Document{ID: 7, OwnerEmail: owner, Filename: filename, UploadDate: uploaded}, nil
			},
		}
		router := setupDocumentRouter(mockUC)

		body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4"))
		req, _ := http.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(7), resp["id"])
		assert.Equal(t, "report.pdf", resp["filename"])
	})

	t.Run("failure: file field missing", func(t *testing.T) {
		router := setupDocumentRouter(&mockDocumentsUsecase{})

		body, contentType := multipartBody(t, "attachment", "report.pdf", []byte("%PDF-1.4"))
		req, _ := http.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("failure: unsupported file type", func(t *testing.T) {
		mockUC := &mockDocumentsUsecase{
			UploadFunc: func(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error) {
				return nil, usecase.ErrUnsupportedFileType
			},
		}
		router := setupDocumentRouter(mockUC)

		body, contentType := multipartBody(t, "file", "malware.exe", []byte("MZ"))
		req, _ := http.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unsupported file type")
	})

	t.Run("failure: storage error", func(t *testing.T) {
		mockUC := &mockDocumentsUsecase{
			UploadFunc: func(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error) {
				return nil, errors.New("disk full")
			},
		}
		router := setupDocumentRouter(mockUC)

		body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4"))
		req, _ := http.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDocumentHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns owner documents", func(t *testing.T) {
		mockUC := &mockDocumentsUsecase{
			ListFunc: func(ctx context.Context, owner string) ([]entity.Document, error) {
				assert.Equal(t, "owner@example.com", owner)
				return []entity.Document{
					{ID: 2, Filename: "b.docx"},
					{ID: 1, Filename: "a.pdf"},
				}, nil
			},
		}
		router := setupDocumentRouter(mockUC)

		req, _ := http.NewRequest(http.MethodGet, "/documents", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "b.docx", resp[0]["filename"])
	})

	t.Run("success: empty list is a JSON array", func(t *testing.T) {
		mockUC := &mockDocumentsUsecase{
			ListFunc: func(ctx context.Context, owner string) ([]entity.Document, error) {
				return nil, nil
			},
		}
		router := setupDocumentRouter(mockUC)

		req, _ := http.NewRequest(http.MethodGet, "/documents", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestDocumentHandler_Content(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("failure: unknown document", func(t *testing.T) {
		router := setupDocumentRouter(&mockDocumentsUsecase{})

		req, _ := http.NewRequest(http.MethodGet, "/documents/42/content", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "document not found")
	})

	t.Run("failure: non-numeric id", func(t *testing.T) {
		router := setupDocumentRouter(&mockDocumentsUsecase{})

		req, _ := http.NewRequest(http.MethodGet, "/documents/abc/content", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDocumentHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns 204", func(t *testing.T) {
		var gotID uint
		var gotCascade bool
		mockUC := &mockDocumentsUsecase{
			DeleteFunc: func(ctx context.Context, owner string, id uint, cascade bool) error {
				gotID, gotCascade = id, cascade
				return nil
			},
		}
		router := setupDocumentRouter(mockUC)

		req, _ := http.NewRequest(http.MethodDelete, "/documents/9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, uint(9), gotID)
		assert.False(t, gotCascade)
	})

	t.Run("success: cascade flag forwarded", func(t *testing.T) {
		var gotCascade bool
		mockUC := &mockDocumentsUsecase{
			DeleteFunc: func(ctx context.Context, owner string, id uint, cascade bool) error {
				gotCascade = cascade
				return nil
			},
		}
		router := setupDocumentRouter(mockUC)

		req, _ := http.NewRequest(http.MethodDelete, "/documents/9?cascade=true", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, gotCascade)
	})

	t.Run("failure: unknown document", func(t *testing.T) {
		mockUC := &mockDocumentsUsecase{
			DeleteFunc: func(ctx context.Context, owner string, id uint, cascade bool) error {
				return usecase.ErrDocumentNotFound
			},
		}
		router := setupDocumentRouter(mockUC)

		req, _ := http.NewRequest(http.MethodDelete, "/documents/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "document not found")
	})
}
