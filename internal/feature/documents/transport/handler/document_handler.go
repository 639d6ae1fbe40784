// Package handler はdocumentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docsummary_backend/internal/api"
	"docsummary_backend/internal/feature/documents/domain/entity"
	"docsummary_backend/internal/feature/documents/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// DocumentsUsecase はドキュメントカタログ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DocumentsUsecase interface {
	Upload(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error)
	List(ctx context.Context, owner string) ([]entity.Document, error)
	Get(ctx context.Context, owner string, id uint) (*entity.Document, error)
	Delete(ctx context.Context, owner string, id uint, cascade bool) error
}

// DocumentHandler はドキュメントのHTTPリクエストを処理します。
type DocumentHandler struct {
	uc DocumentsUsecase
}

// NewDocumentHandler はDocumentHandlerの新しいインスタンスを生成します。
func NewDocumentHandler(uc DocumentsUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// parseID はパスパラメータのIDをuintに変換します。
// 不正なIDは存在しないリソースと同様に扱います（所有者と不在を区別しないのと同じ方針）。
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Upload はドキュメントアップロードAPIエンドポイントを処理します。
//
// エンドポイント: POST /documents
// Content-Type: multipart/form-data
// フィールド: file（PDF/DOCX/PPTXファイル）
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("upload file missing", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read upload"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read upload"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	doc, err := h.uc.Upload(c.Request.Context(), owner, file.Filename, data)
	if err != nil {
		if errors.Is(err, usecase.ErrUnsupportedFileType) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unsupported file type"})
			return
		}
		slog.Error("upload failed", "error", err, "owner", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "upload failed"})
		return
	}

	slog.Info("document uploaded", "owner", owner, "doc_id", doc.ID, "filename", doc.Filename)
	c.JSON(http.StatusCreated, api.DocumentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		UploadDate: doc.UploadDate,
	})
}

// List はGET /documentsを処理し、所有者のドキュメント一覧を返します。
func (h *DocumentHandler) List(c *gin.Context) {
	owner := c.GetString(jwtmw.ContextEmail)
	docs, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		slog.Error("document list failed", "error", err, "owner", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list documents"})
		return
	}

	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, api.DocumentResponse{
			ID:         d.ID,
			Filename:   d.Filename,
			UploadDate: d.UploadDate,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Content はGET /documents/:id/contentを処理し、保存されたファイルをそのまま返します。
func (h *DocumentHandler) Content(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	doc, err := h.uc.Get(c.Request.Context(), owner, id)
	if err != nil {
		if errors.Is(err, usecase.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
			return
		}
		slog.Error("document lookup failed", "error", err, "owner", owner, "doc_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load document"})
		return
	}

	// 元のファイル名でダウンロードさせる
	c.FileAttachment(doc.StoragePath, doc.Filename)
}

// Delete はDELETE /documents/:id?cascade= を処理します。
// cascade=true の場合、このドキュメントを参照する要約も削除します。
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
		return
	}
	cascade := c.DefaultQuery("cascade", "false") == "true"

	owner := c.GetString(jwtmw.ContextEmail)
	if err := h.uc.Delete(c.Request.Context(), owner, id, cascade); err != nil {
		if errors.Is(err, usecase.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
			return
		}
		slog.Error("document delete failed", "error", err, "owner", owner, "doc_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete document"})
		return
	}

	slog.Info("document deleted", "owner", owner, "doc_id", id, "cascade", cascade)
	c.Status(http.StatusNoContent)
}
