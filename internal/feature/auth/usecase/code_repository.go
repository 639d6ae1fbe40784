package usecase

import (
	"context"

	"docsummary_backend/internal/feature/auth/domain/entity"
)

// CodeRepository abstracts the one-time-code ledger.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters / platform).
type CodeRepository interface {
	// SavePendingRegistration stores a pending registration, replacing any
	// existing one for the same email.
	SavePendingRegistration(ctx context.Context, reg *entity.PendingRegistration) error

	// ConsumePendingRegistration removes and returns the pending registration
	// matching email and code. It returns ErrInvalidCode when no pending
	// registration matches, and ErrCodeExpired (after deleting the stale
	// record) when the code matched but its expiry has passed.
	ConsumePendingRegistration(ctx context.Context, email, code string) (*entity.PendingRegistration, error)

	// SaveResetCode stores a new password-reset code. Earlier outstanding
	// codes for the same email stay valid.
	SaveResetCode(ctx context.Context, code *entity.PasswordResetCode) error

	// ConsumeResetCode atomically removes the reset code and returns the
	// email it was issued for. Under concurrent attempts on the same code,
	// exactly one caller succeeds; all others get ErrInvalidOrExpiredCode.
	ConsumeResetCode(ctx context.Context, code string) (string, error)
}
