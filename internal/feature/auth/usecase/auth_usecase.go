// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"docsummary_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6

	// registrationCodeTTL は登録確認コードの有効期間です。
	registrationCodeTTL = 30 * time.Minute

	// resetCodeTTL はパスワードリセットコードの有効期間です。
	resetCodeTTL = 10 * time.Minute
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyRegisteredを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword は指定ユーザーのパスワードハッシュを置き換えます。
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// UpdateProfile は指定ユーザーの姓名を更新します。
	UpdateProfile(ctx context.Context, email, firstName, lastName string) error
}

// CodeMailer はワンタイムコードのメール配送を抽象化します。
// 配送失敗はリトライせず、そのまま呼び出し元へ伝播します。
type CodeMailer interface {
	SendCode(to, code string, ttl time.Duration) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたメールアドレスをsubjectとする署名済みJWTを生成します。
	GenerateToken(email string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	codes  CodeRepository
	mailer CodeMailer
	jwt    JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, codes CodeRepository, mailer CodeMailer, jwt JWTGenerator) *authUsecase {
	return &authUsecase{users: users, codes: codes, mailer: mailer, jwt: jwt}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// generateCode は000000〜999999の一様乱数から6桁ゼロ埋めコードを生成します。
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register は登録リクエストを受け付け、確認コードをメールで送信します。
// ユーザーはこの時点では作成されず、Verifyが成功するまでPendingRegistrationに留まります。
// 同じメールアドレスへの再リクエストは既存の保留コードを上書きします。
func (u *authUsecase) Register(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	// 既存の（検証済み）ユーザーがいる場合は登録不可
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	reg := &entity.PendingRegistration{
		Email:        email,
		Code:         code,
		PasswordHash: string(hashed),
		ExpiresAt:    time.Now().Add(registrationCodeTTL),
	}
	if err := u.codes.SavePendingRegistration(ctx, reg); err != nil {
		return err
	}

	return u.mailer.SendCode(email, code, registrationCodeTTL)
}

// Verify は確認コードを消費し、成功時にユーザーを作成します。
// コード不一致はErrInvalidCode、期限切れはErrCodeExpiredを返します。
func (u *authUsecase) Verify(ctx context.Context, email, code string) error {
	reg, err := u.codes.ConsumePendingRegistration(ctx, email, code)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
		IsVerified:   true,
		FirstName:    "User",
		LastName:     "User",
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// ユーザー不在・未検証・パスワード不一致はすべて同一のErrInvalidCredentialsを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || !user.IsVerified || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.jwt.GenerateToken(user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// ForgotPassword はリセットコードを発行してメールで送信します。
// 未知のメールアドレスはErrUserNotFoundを返します（存在が露呈するトレードオフは仕様通り）。
// 既存の未消費コードは無効化されません。
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	if _, err := u.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	rec := &entity.PasswordResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := u.codes.SaveResetCode(ctx, rec); err != nil {
		return err
	}

	return u.mailer.SendCode(email, code, resetCodeTTL)
}

// ResetPassword はリセットコードをアトミックに消費し、新しいパスワードを保存します。
func (u *authUsecase) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	email, err := u.codes.ConsumeResetCode(ctx, code)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, email, string(hashed))
}

// ChangePassword はログイン済みユーザーのパスワードを変更します。
// 新パスワード2回入力の不一致はErrPasswordMismatch、旧パスワード不一致はErrInvalidCredentialsを返します。
func (u *authUsecase) ChangePassword(ctx context.Context, email, oldPassword, newPassword, newPassword2 string) error {
	if newPassword != newPassword2 {
		return ErrPasswordMismatch
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, email, string(hashed))
}

// Profile は認証済みユーザーのプロフィールを返します。
func (u *authUsecase) Profile(ctx context.Context, email string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, email)
}

// UpdateProfile は姓名を更新し、更新後のユーザーを返します。
func (u *authUsecase) UpdateProfile(ctx context.Context, email, firstName, lastName string) (*entity.User, error) {
	if err := u.users.UpdateProfile(ctx, email, firstName, lastName); err != nil {
		return nil, err
	}
	return u.users.FindByEmail(ctx, email)
}
