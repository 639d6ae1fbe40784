// Package adapters はdocumentsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"docsummary_backend/internal/feature/documents/domain/entity"
	"docsummary_backend/internal/feature/documents/usecase"
)

// documentMySQL はDocumentRepositoryインターフェースのMySQL実装です。
type documentMySQL struct {
	db *gorm.DB
}

// documentMySQLがDocumentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.DocumentRepository = (*documentMySQL)(nil)

// NewDocumentMySQL は指定されたgorm.DB接続でdocumentMySQLの新しいインスタンスを生成します。
func NewDocumentMySQL(db *gorm.DB) *documentMySQL {
	return &documentMySQL{db: db}
}

// Create はドキュメントメタデータをデータベースに追加します。
func (r *documentMySQL) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// FindByOwner は所有者のドキュメント一覧を挿入順で返します。
func (r *documentMySQL) FindByOwner(ctx context.Context, owner string) ([]entity.Document, error) {
	var docs []entity.Document
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", owner).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByID は所有者スコープでドキュメントを取得します。
// 不在と他ユーザー所有は同じusecase.ErrDocumentNotFoundになります。
func (r *documentMySQL) FindByID(ctx context.Context, owner string, id uint) (*entity.Document, error) {
	var doc entity.Document
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Delete は所有者スコープでドキュメントレコードを削除します。
func (r *documentMySQL) Delete(ctx context.Context, owner string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		Delete(&entity.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDocumentNotFound
	}
	return nil
}
