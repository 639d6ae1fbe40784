package usecase

import (
	"context"
	"time"

	"docsummary_backend/internal/feature/folders/domain/entity"
)

// FolderRepository はフォルダエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type FolderRepository interface {
	// Create は新しいフォルダを永続化します。
	Create(ctx context.Context, f *entity.Folder) error

	// FindByOwner は所有者のフォルダ一覧を作成日時の降順で返します。
	FindByOwner(ctx context.Context, owner string) ([]entity.Folder, error)

	// FindByID は所有者スコープでフォルダを取得します。
	// 不在の場合、ErrFolderNotFoundを返します。
	FindByID(ctx context.Context, owner string, id uint) (*entity.Folder, error)

	// Rename はフォルダ名を更新します。不在の場合、ErrFolderNotFoundを返します。
	Rename(ctx context.Context, owner string, id uint, name string) error

	// Delete は所有者スコープでフォルダを削除します。
	// 不在の場合、ErrFolderNotFoundを返します。
	Delete(ctx context.Context, owner string, id uint) error
}

// SummaryUnfiler は削除されたフォルダに属する要約の割り当て解除を抽象化します。
// 実装はsummariesフィーチャーのアダプタが提供します。
type SummaryUnfiler interface {
	// ClearFolder は該当フォルダの要約をすべて未分類に戻します。
	ClearFolder(ctx context.Context, owner string, folderID uint) error
}

// foldersUsecase はフォルダ管理のビジネスロジックを実装します。
type foldersUsecase struct {
	folders   FolderRepository
	summaries SummaryUnfiler
}

// NewFoldersUsecase はfoldersUsecaseの新しいインスタンスを生成します。
func NewFoldersUsecase(folders FolderRepository, summaries SummaryUnfiler) *foldersUsecase {
	return &foldersUsecase{folders: folders, summaries: summaries}
}

// Create は所有者の新しいフォルダを作成します。
func (u *foldersUsecase) Create(ctx context.Context, owner, name string) (*entity.Folder, error) {
	f := &entity.Folder{
		OwnerEmail: owner,
		Name:       name,
		CreatedAt:  time.Now(),
	}
	if err := u.folders.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List は所有者のフォルダ一覧を新しい順で返します。
func (u *foldersUsecase) List(ctx context.Context, owner string) ([]entity.Folder, error) {
	return u.folders.FindByOwner(ctx, owner)
}

// Rename はフォルダ名を変更し、更新後のフォルダを返します。
func (u *foldersUsecase) Rename(ctx context.Context, owner string, id uint, name string) (*entity.Folder, error) {
	if err := u.folders.Rename(ctx, owner, id, name); err != nil {
		return nil, err
	}
	return u.folders.FindByID(ctx, owner, id)
}

// Delete はフォルダを削除し、属していた要約を未分類に戻します。
// 要約自体は削除しません。
func (u *foldersUsecase) Delete(ctx context.Context, owner string, id uint) error {
	if err := u.folders.Delete(ctx, owner, id); err != nil {
		return err
	}
	return u.summaries.ClearFolder(ctx, owner, id)
}
