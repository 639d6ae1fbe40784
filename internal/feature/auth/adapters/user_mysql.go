// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"docsummary_backend/internal/feature/auth/domain/entity"
	"docsummary_backend/internal/feature/auth/usecase"
)

// userMySQL はUserRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type userMySQL struct {
	db *gorm.DB
}

// userMySQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyRegisteredを返します。
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrEmailAlreadyRegistered
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyRegistered
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword は指定ユーザーのパスワードハッシュを置き換えます。
func (r *userMySQL) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// UpdateProfile は指定ユーザーの姓名を更新します。
func (r *userMySQL) UpdateProfile(ctx context.Context, email, firstName, lastName string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"first_name": firstName, "last_name": lastName})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 値が変わらない更新もRowsAffected=0になるため、不在判定は存在確認で行う
		return r.ResolveSubject(ctx, email)
	}
	return nil
}

// ResolveSubject はJWTミドルウェアのsubject再解決に使われます。
// トークンのsubjectが既に削除されたユーザーを指している場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) ResolveSubject(ctx context.Context, email string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
