package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/mocks"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

var loginTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	users     *mocks.UserRepository
	tokens    *mocks.TokenService
	passwords *mocks.PasswordService
	uc        *AuthUseCase
}

func newFixture() *fixture {
	f := &fixture{
		users:     new(mocks.UserRepository),
		tokens:    new(mocks.TokenService),
		passwords: new(mocks.PasswordService),
	}
	f.uc = NewAuthUseCase(f.users, f.tokens, f.passwords,
		logger.NewStructuredLogger(logger.LoggerConfig{Output: io.Discard}), time.Hour)
	f.uc.now = func() time.Time { return loginTime }
	return f
}

func adminUser() *entity.User {
	return &entity.User{ID: 1, Name: "Admin", Email: "admin@example.com", Password: "hashed", Role: entity.RoleAdmin}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture()
	user := adminUser()

	f.users.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	f.passwords.On("VerifyPassword", "secret123", "hashed").Return(true, nil)
	f.passwords.On("NeedsRehash", "hashed").Return(false)
	f.users.On("Update", mock.Anything, user).Return(nil)
	f.tokens.On("GenerateAccessToken", outbound.TokenClaims{UserID: 1, Email: "admin@example.com", Role: "admin"}).Return("jwt-token", nil)

	res, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: " Admin@Example.com ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, 3600, res.ExpiresIn)
	require.NotNil(t, res.User.LastLoginAt)
	assert.Equal(t, loginTime, *res.User.LastLoginAt)
	f.users.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestLogin_RehashesStaleHash(t *testing.T) {
	f := newFixture()

	f.users.On("FindByEmail", mock.Anything, "admin@example.com").Return(adminUser(), nil)
	f.passwords.On("VerifyPassword", "secret123", "hashed").Return(true, nil)
	f.passwords.On("NeedsRehash", "hashed").Return(true)
	f.passwords.On("HashPassword", "secret123").Return("rehashed", nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Password == "rehashed" && u.LastLoginAt != nil
	})).Return(nil)
	f.tokens.On("GenerateAccessToken", mock.Anything).Return("jwt-token", nil)

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: "admin@example.com", Password: "secret123"})

	require.NoError(t, err)
	f.users.AssertExpectations(t)
	f.passwords.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, outbound.ErrNotFound)

	res, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: "ghost@example.com", Password: "secret123"})

	assert.Nil(t, res)
	assert.Equal(t, 401, apperror.GetHTTPStatusCode(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "admin@example.com").Return(adminUser(), nil)
	f.passwords.On("VerifyPassword", "wrong", "hashed").Return(false, nil)

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: "admin@example.com", Password: "wrong"})

	assert.Equal(t, 401, apperror.GetHTTPStatusCode(err))
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
}

func TestLogin_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))

	_, err = f.uc.Login(context.Background(), inbound.LoginRequest{Email: "admin@example.com"})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))
}

func TestLogin_RepositoryError(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, errors.New("db down"))

	_, err := f.uc.Login(context.Background(), inbound.LoginRequest{Email: "admin@example.com", Password: "secret123"})

	assert.Equal(t, 500, apperror.GetHTTPStatusCode(err))
}

func TestMe_NotFound(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, int64(42)).Return(nil, outbound.ErrNotFound)

	_, err := f.uc.Me(context.Background(), 42)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeUserNotFound, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	user := adminUser()
	f.users.On("FindByID", mock.Anything, int64(1)).Return(user, nil)
	f.users.On("Update", mock.Anything, user).Return(nil)

	updated, err := f.uc.UpdateProfile(context.Background(), 1, inbound.UpdateProfileRequest{Name: "Store Admin", Email: "Owner@Example.com"})

	require.NoError(t, err)
	assert.Equal(t, "Store Admin", updated.Name)
	assert.Equal(t, "owner@example.com", updated.Email)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, int64(1)).Return(adminUser(), nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(outbound.ErrConflict)

	_, err := f.uc.UpdateProfile(context.Background(), 1, inbound.UpdateProfileRequest{Name: "Admin", Email: "taken@example.com"})

	assert.Equal(t, 409, apperror.GetHTTPStatusCode(err))
}

func TestUpdateProfile_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpdateProfile(context.Background(), 1, inbound.UpdateProfileRequest{Name: "", Email: "a@example.com"})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))

	_, err = f.uc.UpdateProfile(context.Background(), 1, inbound.UpdateProfileRequest{Name: "Admin", Email: "bad"})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture()
	user := adminUser()
	f.users.On("FindByID", mock.Anything, int64(1)).Return(user, nil)
	f.passwords.On("VerifyPassword", "old-secret", "hashed").Return(true, nil)
	f.passwords.On("HashPassword", "new-secret").Return("new-hash", nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Password == "new-hash"
	})).Return(nil)

	err := f.uc.UpdatePassword(context.Background(), 1, inbound.UpdatePasswordRequest{
		CurrentPassword:      "old-secret",
		Password:             "new-secret",
		PasswordConfirmation: "new-secret",
	})

	require.NoError(t, err)
	f.users.AssertExpectations(t)
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, int64(1)).Return(adminUser(), nil)
	f.passwords.On("VerifyPassword", "guess", "hashed").Return(false, nil)

	err := f.uc.UpdatePassword(context.Background(), 1, inbound.UpdatePasswordRequest{
		CurrentPassword:      "guess",
		Password:             "new-secret",
		PasswordConfirmation: "new-secret",
	})

	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))
	f.passwords.AssertNotCalled(t, "HashPassword", mock.Anything)
}

func TestUpdatePassword_Rules(t *testing.T) {
	f := newFixture()

	err := f.uc.UpdatePassword(context.Background(), 1, inbound.UpdatePasswordRequest{
		CurrentPassword: "old", Password: "short", PasswordConfirmation: "short",
	})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))

	err = f.uc.UpdatePassword(context.Background(), 1, inbound.UpdatePasswordRequest{
		CurrentPassword: "old", Password: "long-enough", PasswordConfirmation: "different",
	})
	assert.Equal(t, 422, apperror.GetHTTPStatusCode(err))
}
