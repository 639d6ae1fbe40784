// Package adapters はsummariesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	docusecase "docsummary_backend/internal/feature/documents/usecase"
	folderusecase "docsummary_backend/internal/feature/folders/usecase"
	"docsummary_backend/internal/feature/summaries/domain/entity"
	"docsummary_backend/internal/feature/summaries/usecase"
)

// summaryMySQL はSummaryRepositoryインターフェースのMySQL実装です。
// documentsフィーチャーのカスケード削除、foldersフィーチャーのフォルダ解除も
// このアダプタが引き受けます。
type summaryMySQL struct {
	db *gorm.DB
}

// 各コンシューマーインターフェースの実装をコンパイル時に検証します。
var (
	_ usecase.SummaryRepository   = (*summaryMySQL)(nil)
	_ docusecase.SummaryRemover   = (*summaryMySQL)(nil)
	_ folderusecase.SummaryUnfiler = (*summaryMySQL)(nil)
)

// NewSummaryMySQL は指定されたgorm.DB接続でsummaryMySQLの新しいインスタンスを生成します。
func NewSummaryMySQL(db *gorm.DB) *summaryMySQL {
	return &summaryMySQL{db: db}
}

// Create は要約をデータベースに追加します。
func (r *summaryMySQL) Create(ctx context.Context, s *entity.Summary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindByID は所有者スコープで要約を取得します。
func (r *summaryMySQL) FindByID(ctx context.Context, owner string, id uint) (*entity.Summary, error) {
	var s entity.Summary
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSummaryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAllByOwner は所有者の全要約を作成日時の降順で返します。
func (r *summaryMySQL) FindAllByOwner(ctx context.Context, owner string) ([]entity.Summary, error) {
	var out []entity.Summary
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", owner).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByDocument は指定ドキュメントの要約を作成日時の降順で返します。
func (r *summaryMySQL) FindByDocument(ctx context.Context, owner string, docID uint) ([]entity.Summary, error) {
	var out []entity.Summary
	if err := r.db.WithContext(ctx).
		Where("doc_id = ? AND owner_email = ?", docID, owner).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByFolder は指定フォルダの要約を作成日時の降順で返します。
func (r *summaryMySQL) FindByFolder(ctx context.Context, owner string, folderID uint) ([]entity.Summary, error) {
	var out []entity.Summary
	if err := r.db.WithContext(ctx).
		Where("folder_id = ? AND owner_email = ?", folderID, owner).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetFolder は要約のフォルダ割り当てを更新します。nilはNULL（未分類）になります。
func (r *summaryMySQL) SetFolder(ctx context.Context, owner string, id uint, folderID *uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Summary{}).
		Where("id = ? AND owner_email = ?", id, owner).
		Update("folder_id", folderID)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// SetNote は要約のノートを上書きします。
func (r *summaryMySQL) SetNote(ctx context.Context, owner string, id uint, note string) error {
	return r.db.WithContext(ctx).Model(&entity.Summary{}).
		Where("id = ? AND owner_email = ?", id, owner).
		Update("note", note).Error
}

// RemoveFromFolder は要約が指定フォルダに属している場合のみNULLに戻します。
// 条件付きUPDATEのRowsAffectedで「そのフォルダに属していない」を検出します。
func (r *summaryMySQL) RemoveFromFolder(ctx context.Context, owner string, folderID, summaryID uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Summary{}).
		Where("id = ? AND owner_email = ? AND folder_id = ?", summaryID, owner, folderID).
		Update("folder_id", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSummaryNotFound
	}
	return nil
}

// Delete は所有者スコープで要約を1件削除します。
func (r *summaryMySQL) Delete(ctx context.Context, owner string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		Delete(&entity.Summary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSummaryNotFound
	}
	return nil
}

// DeleteByDocument はドキュメント削除のカスケードとして、所有者スコープで
// 参照要約をすべて削除します。
func (r *summaryMySQL) DeleteByDocument(ctx context.Context, owner string, docID uint) error {
	return r.db.WithContext(ctx).
		Where("doc_id = ? AND owner_email = ?", docID, owner).
		Delete(&entity.Summary{}).Error
}

// ClearFolder はフォルダ削除のカスケードとして、所有者スコープで該当フォルダの
// 要約をすべて未分類に戻します。要約自体は削除しません。
func (r *summaryMySQL) ClearFolder(ctx context.Context, owner string, folderID uint) error {
	return r.db.WithContext(ctx).Model(&entity.Summary{}).
		Where("folder_id = ? AND owner_email = ?", folderID, owner).
		Update("folder_id", nil).Error
}
