// Package handler はsummariesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docsummary_backend/internal/api"
	docusecase "docsummary_backend/internal/feature/documents/usecase"
	"docsummary_backend/internal/feature/summaries/domain/entity"
	"docsummary_backend/internal/feature/summaries/transport/http/dto"
	"docsummary_backend/internal/feature/summaries/usecase"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

// SummariesUsecase は要約操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SummariesUsecase interface {
	Summarize(ctx context.Context, owner string, docID uint, mode entity.Mode, folderID *uint) (*entity.Summary, error)
	ListAll(ctx context.Context, owner string) ([]entity.Summary, error)
	ListForDocument(ctx context.Context, owner string, docID uint) ([]entity.Summary, error)
	ListForFolder(ctx context.Context, owner string, folderID uint) ([]entity.Summary, error)
	Get(ctx context.Context, owner string, id uint) (*entity.Summary, error)
	ReassignFolder(ctx context.Context, owner string, id uint, folderID *uint) (*entity.Summary, error)
	UpdateNote(ctx context.Context, owner string, id uint, note string) (*entity.Summary, error)
	RemoveFromFolder(ctx context.Context, owner string, folderID, summaryID uint) error
	Delete(ctx context.Context, owner string, id uint) error
}

// SummaryHandler は要約のHTTPリクエストを処理します。
type SummaryHandler struct {
	uc SummariesUsecase
}

// NewSummaryHandler はSummaryHandlerの新しいインスタンスを生成します。
func NewSummaryHandler(uc SummariesUsecase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func toResponse(s *entity.Summary) api.SummaryResponse {
	return api.SummaryResponse{
		ID:        s.ID,
		DocID:     s.DocID,
		Filename:  s.Filename,
		Mode:      string(s.Mode),
		Summary:   s.SummaryText,
		CreatedAt: s.CreatedAt,
		FolderID:  s.FolderID,
		Note:      s.Note,
	}
}

func toResponses(ss []entity.Summary) []api.SummaryResponse {
	out := make([]api.SummaryResponse, 0, len(ss))
	for i := range ss {
		out = append(out, toResponse(&ss[i]))
	}
	return out
}

// Summarize は要約生成APIエンドポイントを処理します。
//
// エンドポイント: POST /ai/summarize?folder_id=
// リクエストボディ: {"doc_id": 1, "mode": "standard"}
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	var folderID *uint
	if raw := c.Query("folder_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid folder_id"})
			return
		}
		v := uint(id)
		folderID = &v
	}

	owner := c.GetString(jwtmw.ContextEmail)
	s, err := h.uc.Summarize(c.Request.Context(), owner, req.DocID, entity.Mode(req.Mode), folderID)
	if err != nil {
		switch {
		case errors.Is(err, docusecase.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
		case errors.Is(err, usecase.ErrFolderNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		case errors.Is(err, usecase.ErrNoExtractableText):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no extractable text in document"})
		case errors.Is(err, usecase.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid summary mode"})
		case errors.Is(err, usecase.ErrGenerationFailed):
			slog.Error("summary generation failed", "error", err, "owner", owner, "doc_id", req.DocID)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "summary generation failed"})
		default:
			slog.Error("summarize failed", "error", err, "owner", owner, "doc_id", req.DocID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to summarize document"})
		}
		return
	}

	slog.Info("summary created", "owner", owner, "summary_id", s.ID, "doc_id", s.DocID, "mode", s.Mode)
	c.JSON(http.StatusCreated, toResponse(s))
}

// ListAll はGET /summariesを処理し、所有者の全要約を新しい順で返します。
func (h *SummaryHandler) ListAll(c *gin.Context) {
	owner := c.GetString(jwtmw.ContextEmail)
	ss, err := h.uc.ListAll(c.Request.Context(), owner)
	if err != nil {
		slog.Error("summary list failed", "error", err, "owner", owner)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list summaries"})
		return
	}
	c.JSON(http.StatusOK, toResponses(ss))
}

// ListForDocument はGET /documents/:id/summariesを処理します。
func (h *SummaryHandler) ListForDocument(c *gin.Context) {
	docID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	ss, err := h.uc.ListForDocument(c.Request.Context(), owner, docID)
	if err != nil {
		slog.Error("summary list failed", "error", err, "owner", owner, "doc_id", docID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list summaries"})
		return
	}
	c.JSON(http.StatusOK, toResponses(ss))
}

// ListForFolder はGET /folders/:id/summariesを処理します。
func (h *SummaryHandler) ListForFolder(c *gin.Context) {
	folderID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	ss, err := h.uc.ListForFolder(c.Request.Context(), owner, folderID)
	if err != nil {
		if errors.Is(err, usecase.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
			return
		}
		slog.Error("summary list failed", "error", err, "owner", owner, "folder_id", folderID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list summaries"})
		return
	}
	c.JSON(http.StatusOK, toResponses(ss))
}

// Get はGET /summaries/:idを処理します。
func (h *SummaryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	s, err := h.uc.Get(c.Request.Context(), owner, id)
	if err != nil {
		if errors.Is(err, usecase.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
			return
		}
		slog.Error("summary lookup failed", "error", err, "owner", owner, "summary_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// ReassignFolder はPUT /summaries/:id/folderを処理します。
func (h *SummaryHandler) ReassignFolder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		return
	}

	var req dto.FolderUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	s, err := h.uc.ReassignFolder(c.Request.Context(), owner, id, req.FolderID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSummaryNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		case errors.Is(err, usecase.ErrFolderNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		default:
			slog.Error("folder reassignment failed", "error", err, "owner", owner, "summary_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update summary"})
		}
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// UpdateNote はPUT /summaries/:id/noteを処理します。
func (h *SummaryHandler) UpdateNote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		return
	}

	var req dto.NoteUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	s, err := h.uc.UpdateNote(c.Request.Context(), owner, id, req.Note)
	if err != nil {
		if errors.Is(err, usecase.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
			return
		}
		slog.Error("note update failed", "error", err, "owner", owner, "summary_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update summary"})
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// RemoveFromFolder はDELETE /folders/:id/summaries/:summaryIDを処理します。
// 要約自体は残し、フォルダ割り当てのみ解除します。
func (h *SummaryHandler) RemoveFromFolder(c *gin.Context) {
	folderID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		return
	}
	summaryID, ok := parseID(c, "summaryID")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	if err := h.uc.RemoveFromFolder(c.Request.Context(), owner, folderID, summaryID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrFolderNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "folder not found"})
		case errors.Is(err, usecase.ErrSummaryNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found in folder"})
		default:
			slog.Error("remove from folder failed", "error", err, "owner", owner,
				"folder_id", folderID, "summary_id", summaryID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update summary"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete はDELETE /summaries/:idを処理します。
func (h *SummaryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
		return
	}

	owner := c.GetString(jwtmw.ContextEmail)
	if err := h.uc.Delete(c.Request.Context(), owner, id); err != nil {
		if errors.Is(err, usecase.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
			return
		}
		slog.Error("summary delete failed", "error", err, "owner", owner, "summary_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete summary"})
		return
	}

	slog.Info("summary deleted", "owner", owner, "summary_id", id)
	c.Status(http.StatusNoContent)
}
