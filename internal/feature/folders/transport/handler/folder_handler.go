// Package handler はfoldersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docsummary_backend/internal/api"
	"docsummary_backend/internal/feature/folders/domain/entity"
	"docsummary_backend/internal/feature/folders/transport/http/dto"
	"docsummary_backend/internal/feature/folders/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// FoldersUsecase はフォルダ操作のユースケースインターフェースを定義します。
type FoldersUsecase interface {
	Create(ctx context.Context, owner, name string) (*entity.Folder, error)
	List(ctx context.Context, owner string) ([]entity.Folder, error)
	Rename(ctx context.Context, owner string, id uint, name string) (*entity.Folder, error)
	Delete(ctx context.Context, owner string, id uint) error
}

// FolderHandler はフォルダのHTTPリクエストを処理します。
type FolderHandler struct {
	uc FoldersUsecase
}

// NewFolderHandler はFolderHandlerの新しいインスタンスを生成します。
func NewFolderHandler(uc FoldersUsecase) *FolderHandler {
	return &FolderHandler{uc: uc}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func toResponse(f *entity.Folder) api.FolderResponse {
	return api.FolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
}

// Create はフォルダ作成APIエンドポイントを処理します。
//
// エンドポイント: POST /folders
// リクエストボディ: {"name": "研究"}
func (h *FolderHandler) Create(c *gin.Context) {
	var req dto.FolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name is required"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	f, err := h.uc.Create(c.Request.Context(), owner, req.Name)
	if err != nil {
		slog.Error("folder create failed", "error", err, "owner", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create folder"})
		return
	}

	slog.Info("folder created", "owner", owner, "folder_id", f.ID)
	c.JSON(http.StatusCreated, toResponse(f))
}

// List はGET /foldersを処理し、所有者のフォルダ一覧を新しい順で返します。
func (h *FolderHandler) List(c *gin.Context) {
	owner := c.GetString(jwtmw.ContextEmail)
	fs, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		slog.Error("folder list failed", "error", err, "owner", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list folders"})
		return
	}

	out := make([]api.FolderResponse, 0, len(fs))
	for i := range fs {
		out = append(out, toResponse(&fs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Rename はPUT /folders/:idを処理します。
func (h *FolderHandler) Rename(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		return
	}

	var req dto.FolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name is required"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	f, err := h.uc.Rename(c.Request.Context(), owner, id, req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
			return
		}
		slog.Error("folder rename failed", "error", err, "owner", owner, "folder_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to rename folder"})
		return
	}
	c.JSON(http.StatusOK, toResponse(f))
}

// Delete はDELETE /folders/:idを処理します。
// 属していた要約は未分類に戻り、削除はされません。
func (h *FolderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	if err := h.uc.Delete(c.Request.Context(), owner, id); err != nil {
		if errors.Is(err, usecase.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
			return
		}
		slog.Error("folder delete failed", "error", err, "owner", owner, "folder_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete folder"})
		return
	}

	slog.Info("folder deleted", "owner", owner, "folder_id", id)
	c.Status(http.StatusNoContent)
}
