// Package usecase はdocumentsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"docsummary_backend/internal/feature/documents/domain/entity"
)

// allowedExtensions はアップロードを許可するファイル拡張子のクローズドな列挙です。
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
}

// DocumentRepository はドキュメントメタデータの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type DocumentRepository interface {
	// Create は新しいドキュメントメタデータを永続化します。
	Create(ctx context.Context, doc *entity.Document) error

	// FindByOwner は所有者のドキュメント一覧を返します。順序は挿入順です。
	FindByOwner(ctx context.Context, owner string) ([]entity.Document, error)

	// FindByID は所有者スコープでドキュメントを取得します。
	// 不在または他ユーザー所有の場合、ErrDocumentNotFoundを返します。
	FindByID(ctx context.Context, owner string, id uint) (*entity.Document, error)

	// Delete は所有者スコープでドキュメントを削除します。
	// 削除対象がない場合、ErrDocumentNotFoundを返します。
	Delete(ctx context.Context, owner string, id uint) error
}

// FileStore はアップロードされたバイト列のディスク保存を抽象化します。
type FileStore interface {
	// Save はバイト列をランダム生成名で保存し、保存先パスを返します。
	// クライアント指定のファイル名は保存名に使用しません。
	Save(data []byte, ext string) (string, error)

	// Remove は保存済みファイルを削除します。ファイルが既に存在しない場合は
	// エラーになりません。
	Remove(path string) error
}

// SummaryRemover はドキュメント削除時のカスケードで要約を削除します。
// 実装はsummariesフィーチャーのアダプタが提供します。
type SummaryRemover interface {
	// DeleteByDocument は指定ドキュメントを参照する所有者の要約をすべて削除します。
	DeleteByDocument(ctx context.Context, owner string, docID uint) error
}

// documentsUsecase はドキュメントカタログのビジネスロジックを実装します。
type documentsUsecase struct {
	docs      DocumentRepository
	files     FileStore
	summaries SummaryRemover
}

// NewDocumentsUsecase はdocumentsUsecaseの新しいインスタンスを生成します。
func NewDocumentsUsecase(docs DocumentRepository, files FileStore, summaries SummaryRemover) *documentsUsecase {
	return &documentsUsecase{docs: docs, files: files, summaries: summaries}
}

// Upload は拡張子を検証し、バイト列を保存してメタデータを記録します。
// 許可外の拡張子はErrUnsupportedFileTypeを返します。
func (u *documentsUsecase) Upload(ctx context.Context, owner, filename string, data []byte) (*entity.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFileType
	}

	path, err := u.files.Save(data, ext)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		OwnerEmail:  owner,
		Filename:    filename,
		StoragePath: path,
		UploadDate:  time.Now(),
	}
	if err := u.docs.Create(ctx, doc); err != nil {
		// メタデータ登録に失敗したら孤児ファイルを残さない
		if rmErr := u.files.Remove(path); rmErr != nil {
			slog.Warn("failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return nil, err
	}
	return doc, nil
}

// List は所有者のドキュメント一覧を返します。
func (u *documentsUsecase) List(ctx context.Context, owner string) ([]entity.Document, error) {
	return u.docs.FindByOwner(ctx, owner)
}

// Get は所有者スコープで1件のドキュメントを返します。
func (u *documentsUsecase) Get(ctx context.Context, owner string, id uint) (*entity.Document, error) {
	return u.docs.FindByID(ctx, owner, id)
}

// Delete はドキュメントと保存ファイルを削除します。
// ファイル削除はベストエフォートで、ファイルが既に消えていても失敗にしません。
// cascade指定時は、このドキュメントを参照する要約も削除します（所有者スコープ）。
func (u *documentsUsecase) Delete(ctx context.Context, owner string, id uint, cascade bool) error {
	doc, err := u.docs.FindByID(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := u.files.Remove(doc.StoragePath); err != nil {
		slog.Warn("failed to remove stored file", "path", doc.StoragePath, "error", err)
	}

	if err := u.docs.Delete(ctx, owner, id); err != nil {
		return err
	}

	if cascade {
		if err := u.summaries.DeleteByDocument(ctx, owner, id); err != nil {
			return err
		}
	}
	return nil
}
