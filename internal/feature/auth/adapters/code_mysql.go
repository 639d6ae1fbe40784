package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docsummary_backend/internal/feature/auth/domain/entity"
	"docsummary_backend/internal/feature/auth/usecase"
)

// codeMySQL はワンタイムコード台帳のMySQL実装です。
// 保留中の登録とリセットコードを耐久ストアに保持するため、プロセス再起動や
// 水平スケールでもコードが失われません。
type codeMySQL struct {
	db *gorm.DB
}

// codeMySQLがCodeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CodeRepository = (*codeMySQL)(nil)

// NewCodeMySQL は指定されたgorm.DB接続でcodeMySQLの新しいインスタンスを生成します。
func NewCodeMySQL(db *gorm.DB) *codeMySQL {
	return &codeMySQL{db: db}
}

// SavePendingRegistration は保留中の登録をアップサートします。
// メールアドレスが主キーのため、再リクエストは既存のコードと期限を上書きします。
func (r *codeMySQL) SavePendingRegistration(ctx context.Context, reg *entity.PendingRegistration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(reg).Error
}

// ConsumePendingRegistration は保留中の登録を検証して削除します。
// 期限切れレコードはアクセス時に削除されます（バックグラウンド掃除は行いません）。
func (r *codeMySQL) ConsumePendingRegistration(ctx context.Context, email, code string) (*entity.PendingRegistration, error) {
	var reg entity.PendingRegistration
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInvalidCode
		}
		return nil, err
	}
	if reg.Code != code {
		return nil, usecase.ErrInvalidCode
	}
	if time.Now().After(reg.ExpiresAt) {
		// 期限切れの掃除。失敗しても結果は変わらない
		r.db.WithContext(ctx).Where("email = ?", email).Delete(&entity.PendingRegistration{})
		return nil, usecase.ErrCodeExpired
	}

	if err := r.db.WithContext(ctx).
		Where("email = ? AND code = ?", email, code).
		Delete(&entity.PendingRegistration{}).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// SaveResetCode は新しいリセットコードを挿入します。
// 同一メールアドレスの既存コードは無効化しません（ユニーク制約なし）。
func (r *codeMySQL) SaveResetCode(ctx context.Context, code *entity.PasswordResetCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// ConsumeResetCode はリセットコードをアトミックに消費します。
// 勝者の決定は条件付きDELETEのRowsAffectedに委ねており、同じコードで競合した
// 2つの呼び出しのうち、ストア上でちょうど1つだけが成功します。
func (r *codeMySQL) ConsumeResetCode(ctx context.Context, code string) (string, error) {
	var rec entity.PasswordResetCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrInvalidOrExpiredCode
		}
		return "", err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", rec.ID, time.Now()).
		Delete(&entity.PasswordResetCode{})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// 期限切れ、または競合相手が先に消費した
		return "", usecase.ErrInvalidOrExpiredCode
	}
	return rec.Email, nil
}
