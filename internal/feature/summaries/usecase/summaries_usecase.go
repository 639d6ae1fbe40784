// Package usecase はsummariesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	docentity "docsummary_backend/internal/feature/documents/domain/entity"
	"docsummary_backend/internal/feature/summaries/domain/entity"
	"docsummary_backend/internal/platform/extract"
)

// SummaryRepository は要約エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type SummaryRepository interface {
	// Create は新しい要約を永続化します。
	Create(ctx context.Context, s *entity.Summary) error

	// FindByID は所有者スコープで要約を取得します。
	// 不在の場合、ErrSummaryNotFoundを返します。
	FindByID(ctx context.Context, owner string, id uint) (*entity.Summary, error)

	// FindAllByOwner は所有者の全要約を作成日時の降順で返します。
	FindAllByOwner(ctx context.Context, owner string) ([]entity.Summary, error)

	// FindByDocument は指定ドキュメントの要約を作成日時の降順で返します。
	FindByDocument(ctx context.Context, owner string, docID uint) ([]entity.Summary, error)

	// FindByFolder は指定フォルダの要約を作成日時の降順で返します。
	FindByFolder(ctx context.Context, owner string, folderID uint) ([]entity.Summary, error)

	// SetFolder は要約のフォルダ割り当てを更新します。nilで割り当てを解除します。
	SetFolder(ctx context.Context, owner string, id uint, folderID *uint) error

	// SetNote は要約のノートを上書きします。
	SetNote(ctx context.Context, owner string, id uint, note string) error

	// RemoveFromFolder は要約が指定フォルダに属している場合のみ割り当てを
	// 解除します。属していない、または要約が不在の場合、ErrSummaryNotFoundを返します。
	RemoveFromFolder(ctx context.Context, owner string, folderID, summaryID uint) error

	// Delete は所有者スコープで要約を削除します。
	Delete(ctx context.Context, owner string, id uint) error
}

// DocumentSource は要約パイプラインが参照するドキュメントカタログを抽象化します。
type DocumentSource interface {
	// FindByID は所有者スコープでドキュメントを取得します。
	FindByID(ctx context.Context, owner string, id uint) (*docentity.Document, error)
}

// FolderDirectory はフォルダ所有権の検証を抽象化します。
// 実装はfoldersフィーチャーのアダプタが提供します。
type FolderDirectory interface {
	// Exists は所有者のフォルダとして存在するかを返します。
	Exists(ctx context.Context, owner string, id uint) (bool, error)
}

// TextExtractor は保存済みドキュメントからのテキスト抽出を抽象化します。
type TextExtractor interface {
	// Extract はpathのドキュメントを平文にします。テキストが取れない場合、
	// extract.ErrNoExtractableTextを返します。
	Extract(ctx context.Context, path string) (string, error)
}

// SummaryGenerator は外部LLMによる要約生成を抽象化します。
type SummaryGenerator interface {
	// Summarize は抽出テキストと詳細度モードから要約文字列を生成します。
	Summarize(ctx context.Context, text string, mode entity.Mode) (string, error)
}

// summariesUsecase は要約パイプラインと要約ストアのビジネスロジックを実装します。
type summariesUsecase struct {
	summaries SummaryRepository
	docs      DocumentSource
	folders   FolderDirectory
	extractor TextExtractor
	generator SummaryGenerator
}

// NewSummariesUsecase はsummariesUsecaseの新しいインスタンスを生成します。
func NewSummariesUsecase(summaries SummaryRepository, docs DocumentSource, folders FolderDirectory,
	extractor TextExtractor, generator SummaryGenerator) *summariesUsecase {
	return &summariesUsecase{
		summaries: summaries,
		docs:      docs,
		folders:   folders,
		extractor: extractor,
		generator: generator,
	}
}

// checkFolder は非nilのfolderIDが呼び出し元の所有フォルダであることを検証します。
// フォルダ所有権は作成時・再割り当て時とも一様に強制します。
func (u *summariesUsecase) checkFolder(ctx context.Context, owner string, folderID *uint) error {
	if folderID == nil {
		return nil
	}
	ok, err := u.folders.Exists(ctx, owner, *folderID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFolderNotFound
	}
	return nil
}

// Summarize はドキュメント取得→テキスト抽出→LLM要約→永続化のパイプラインを実行します。
// LLM呼び出しはリクエスト処理に比して長時間ですが、ハンドラごとのgoroutineで
// 実行されるため他のリクエストをブロックしません。
func (u *summariesUsecase) Summarize(ctx context.Context, owner string, docID uint, mode entity.Mode, folderID *uint) (*entity.Summary, error) {
	if mode == "" {
		mode = entity.ModeStandard
	}
	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}

	if err := u.checkFolder(ctx, owner, folderID); err != nil {
		return nil, err
	}

	doc, err := u.docs.FindByID(ctx, owner, docID)
	if err != nil {
		return nil, err
	}

	text, err := u.extractor.Extract(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, extract.ErrNoExtractableText) {
			return nil, ErrNoExtractableText
		}
		return nil, err
	}

	summaryText, err := u.generator.Summarize(ctx, text, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s := &entity.Summary{
		DocID:       doc.ID,
		OwnerEmail:  owner,
		Filename:    doc.Filename,
		Mode:        mode,
		SummaryText: summaryText,
		FolderID:    folderID,
		CreatedAt:   time.Now(),
	}
	if err := u.summaries.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListAll は所有者の全要約を新しい順で返します。
func (u *summariesUsecase) ListAll(ctx context.Context, owner string) ([]entity.Summary, error) {
	return u.summaries.FindAllByOwner(ctx, owner)
}

// ListForDocument は指定ドキュメントの要約を新しい順で返します。
func (u *summariesUsecase) ListForDocument(ctx context.Context, owner string, docID uint) ([]entity.Summary, error) {
	return u.summaries.FindByDocument(ctx, owner, docID)
}

// ListForFolder はフォルダ所有権を検証した上で、フォルダ内の要約を新しい順で返します。
func (u *summariesUsecase) ListForFolder(ctx context.Context, owner string, folderID uint) ([]entity.Summary, error) {
	if err := u.checkFolder(ctx, owner, &folderID); err != nil {
		return nil, err
	}
	return u.summaries.FindByFolder(ctx, owner, folderID)
}

// Get は所有者スコープで1件の要約を返します。
func (u *summariesUsecase) Get(ctx context.Context, owner string, id uint) (*entity.Summary, error) {
	return u.summaries.FindByID(ctx, owner, id)
}

// ReassignFolder は要約のフォルダ割り当てを変更します。nilで解除します。
// 割り当て先フォルダは呼び出し元の所有でなければなりません。
func (u *summariesUsecase) ReassignFolder(ctx context.Context, owner string, id uint, folderID *uint) (*entity.Summary, error) {
	if _, err := u.summaries.FindByID(ctx, owner, id); err != nil {
		return nil, err
	}
	if err := u.checkFolder(ctx, owner, folderID); err != nil {
		return nil, err
	}
	if err := u.summaries.SetFolder(ctx, owner, id, folderID); err != nil {
		return nil, err
	}
	return u.summaries.FindByID(ctx, owner, id)
}

// UpdateNote は要約のノートを上書きし、更新後の要約を返します。
func (u *summariesUsecase) UpdateNote(ctx context.Context, owner string, id uint, note string) (*entity.Summary, error) {
	if _, err := u.summaries.FindByID(ctx, owner, id); err != nil {
		return nil, err
	}
	if err := u.summaries.SetNote(ctx, owner, id, note); err != nil {
		return nil, err
	}
	return u.summaries.FindByID(ctx, owner, id)
}

// RemoveFromFolder は要約が指定フォルダに属している場合のみ割り当てを解除します。
// 「別のフォルダに属している」と「要約が存在しない」はどちらもErrSummaryNotFoundです。
func (u *summariesUsecase) RemoveFromFolder(ctx context.Context, owner string, folderID, summaryID uint) error {
	if err := u.checkFolder(ctx, owner, &folderID); err != nil {
		return err
	}
	return u.summaries.RemoveFromFolder(ctx, owner, folderID, summaryID)
}

// Delete は所有者スコープで要約を1件削除します。
func (u *summariesUsecase) Delete(ctx context.Context, owner string, id uint) error {
	return u.summaries.Delete(ctx, owner, id)
}
