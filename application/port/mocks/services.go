package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
)

type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.TokenClaims), args.Error(1)
}

type PasswordService struct {
	mock.Mock
}

func (m *PasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordService) VerifyPassword(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *PasswordService) NeedsRehash(hash string) bool {
	return m.Called(hash).Bool(0)
}

type ChangeRecorder struct {
	mock.Mock
}

func (m *ChangeRecorder) OnCreate(ctx context.Context, actorID *int64, subject entity.Auditable) error {
	args := m.Called(ctx, actorID, subject)
	return args.Error(0)
}

func (m *ChangeRecorder) OnUpdate(ctx context.Context, actorID *int64, subject entity.Auditable, prior entity.Attributes) error {
	args := m.Called(ctx, actorID, subject, prior)
	return args.Error(0)
}

func (m *ChangeRecorder) OnDelete(ctx context.Context, actorID *int64, subject entity.Auditable) error {
	args := m.Called(ctx, actorID, subject)
	return args.Error(0)
}

// TxManager runs fn inline and records whether the transaction committed.
type TxManager struct {
	Calls      int
	Committed  int
	RolledBack int
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

type RateLimitService struct {
	mock.Mock
}

func (m *RateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *RateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *RateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	args := m.Called(ctx, key, duration, reason)
	return args.Error(0)
}

func (m *RateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *RateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}
