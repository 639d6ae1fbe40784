// Package codes provides a Redis-backed implementation of the one-time-code ledger.
package codes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"docsummary_backend/internal/feature/auth/domain/entity"
	"docsummary_backend/internal/feature/auth/usecase"
)

// CodeRedis implements usecase.CodeRepository using Redis.
// Reset codes are plain string values consumed with GETDEL, which makes the
// consume atomic on the store side. Pending registrations are JSON values
// kept past their logical expiry so that an expired confirmation attempt can
// be distinguished from an unknown one.
type CodeRedis struct {
	client *redis.Client
	prefix string
}

// CodeRedisがCodeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CodeRepository = (*CodeRedis)(nil)

// NewCodeRedis creates a new CodeRedis instance.
func NewCodeRedis(client *redis.Client, prefix string) *CodeRedis {
	return &CodeRedis{client: client, prefix: prefix}
}

// pendingKey returns the Redis key for a pending registration.
func (r *CodeRedis) pendingKey(email string) string {
	return fmt.Sprintf("%s:pending:%s", r.prefix, email)
}

// resetKey returns the Redis key for a password-reset code.
func (r *CodeRedis) resetKey(code string) string {
	return fmt.Sprintf("%s:reset:%s", r.prefix, code)
}

// SavePendingRegistration stores a pending registration, replacing any
// existing one for the same email. The key TTL is set to twice the logical
// expiry window so ConsumePendingRegistration can still report CodeExpired.
func (r *CodeRedis) SavePendingRegistration(ctx context.Context, reg *entity.PendingRegistration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}

	ttl := time.Until(reg.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("pending registration already expired")
	}

	return r.client.Set(ctx, r.pendingKey(reg.Email), data, 2*ttl).Err()
}

// ConsumePendingRegistration validates and removes the pending registration.
func (r *CodeRedis) ConsumePendingRegistration(ctx context.Context, email, code string) (*entity.PendingRegistration, error) {
	data, err := r.client.Get(ctx, r.pendingKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrInvalidCode
		}
		return nil, err
	}

	var reg entity.PendingRegistration
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}

	if reg.Code != code {
		return nil, usecase.ErrInvalidCode
	}
	if time.Now().After(reg.ExpiresAt) {
		r.client.Del(ctx, r.pendingKey(email))
		return nil, usecase.ErrCodeExpired
	}

	if err := r.client.Del(ctx, r.pendingKey(email)).Err(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// SaveResetCode stores a reset code keyed by the code value itself, expiring
// via Redis TTL. Earlier codes for the same email keep their own keys.
func (r *CodeRedis) SaveResetCode(ctx context.Context, code *entity.PasswordResetCode) error {
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("reset code already expired")
	}
	return r.client.Set(ctx, r.resetKey(code.Code), code.Email, ttl).Err()
}

// ConsumeResetCode removes the reset code and returns the email it was issued
// for. GETDEL is a single Redis command, so two racing callers are serialized
// by the store and exactly one of them succeeds.
func (r *CodeRedis) ConsumeResetCode(ctx context.Context, code string) (string, error) {
	email, err := r.client.GetDel(ctx, r.resetKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", usecase.ErrInvalidOrExpiredCode
		}
		return "", err
	}
	return email, nil
}
