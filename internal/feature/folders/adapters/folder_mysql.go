// Package adapters はfoldersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"docsummary_backend/internal/feature/folders/domain/entity"
	"docsummary_backend/internal/feature/folders/usecase"
)

// folderMySQL はFolderRepositoryインターフェースのMySQL実装です。
type folderMySQL struct {
	db *gorm.DB
}

// folderMySQLがFolderRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FolderRepository = (*folderMySQL)(nil)

// NewFolderMySQL は指定されたgorm.DB接続でfolderMySQLの新しいインスタンスを生成します。
func NewFolderMySQL(db *gorm.DB) *folderMySQL {
	return &folderMySQL{db: db}
}

// Create はフォルダをデータベースに追加します。
func (r *folderMySQL) Create(ctx context.Context, f *entity.Folder) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// FindByOwner は所有者のフォルダ一覧を作成日時の降順で返します。
func (r *folderMySQL) FindByOwner(ctx context.Context, owner string) ([]entity.Folder, error) {
	var out []entity.Folder
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", owner).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID は所有者スコープでフォルダを取得します。
func (r *folderMySQL) FindByID(ctx context.Context, owner string, id uint) (*entity.Folder, error) {
	var f entity.Folder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFolderNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Exists は所有者のフォルダとして存在するかを返します。
// summariesフィーチャーのフォルダ所有権検証が利用します。
func (r *folderMySQL) Exists(ctx context.Context, owner string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Folder{}).
		Where("id = ? AND owner_email = ?", id, owner).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rename はフォルダ名を更新します。
// 同名へのリネームはRowsAffectedが0になるため、存在確認にフォールバックします。
func (r *folderMySQL) Rename(ctx context.Context, owner string, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&entity.Folder{}).
		Where("id = ? AND owner_email = ?", id, owner).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, owner, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete は所有者スコープでフォルダを削除します。
func (r *folderMySQL) Delete(ctx context.Context, owner string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		Delete(&entity.Folder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFolderNotFound
	}
	return nil
}
