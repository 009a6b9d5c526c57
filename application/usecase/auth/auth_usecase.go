package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/domain/valueobject"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

const maxNameLength = 255

type AuthUseCase struct {
	userRepo        outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	logger          logger.Logger
	accessTokenTTL  time.Duration
	now             func() time.Time
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	log logger.Logger,
	accessTokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          log,
		accessTokenTTL:  accessTokenTTL,
		now:             time.Now,
	}
}

// Login verifies the credentials, stamps last_login_at and issues an access token.
func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	credentials, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, valueobject.ErrMissingPassword) {
			return nil, apperror.ErrValidation("password", err.Error())
		}
		return nil, apperror.ErrValidation("email", err.Error())
	}

	user, err := uc.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil {
		if !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.ErrDatabaseError("find user", err)
		}
		logger.LogAuthEvent(ctx, uc.logger, "login", 0, "", false, map[string]interface{}{"reason": "unknown_email"})
		return nil, apperror.ErrInvalidCredentials("")
	}

	ok, err := uc.passwordService.VerifyPassword(credentials.Password(), user.Password)
	if err != nil || !ok {
		logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, "", false, map[string]interface{}{"reason": "wrong_password"})
		return nil, apperror.ErrInvalidCredentials("")
	}

	if uc.passwordService.NeedsRehash(user.Password) {
		if hash, err := uc.passwordService.HashPassword(credentials.Password()); err == nil {
			user.Password = hash
		} else {
			uc.logger.Warn(ctx, "password rehash failed", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		}
	}

	user.MarkLoggedIn(uc.now())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.ErrDatabaseError("update last login", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperror.ErrInternalServerError("token generation failed", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, "", true, nil)

	return &inbound.LoginResponse{
		Token:     token,
		ExpiresIn: int(uc.accessTokenTTL.Seconds()),
		User:      user,
	}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*entity.User, error) {
	return uc.findUser(ctx, userID)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, req inbound.UpdateProfileRequest) (*entity.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.ErrValidation("name", "the name field is required")
	}
	if len(name) > maxNameLength {
		return nil, apperror.ErrValidation("name", "the name may not be greater than 255 characters")
	}
	if err := valueobject.ValidateEmail(req.Email); err != nil {
		return nil, apperror.ErrValidation("email", err.Error())
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.UpdatedAt = uc.now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrConflict) {
			return nil, apperror.ErrConflict("User", "the email has already been taken")
		}
		return nil, apperror.ErrDatabaseError("update profile", err)
	}
	return user, nil
}

func (uc *AuthUseCase) UpdatePassword(ctx context.Context, userID int64, req inbound.UpdatePasswordRequest) error {
	if req.CurrentPassword == "" {
		return apperror.ErrValidation("current_password", "the current password field is required")
	}
	if err := valueobject.ValidateNewPassword(req.Password, req.PasswordConfirmation); err != nil {
		return apperror.ErrValidation("password", err.Error())
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := uc.passwordService.VerifyPassword(req.CurrentPassword, user.Password)
	if err != nil || !ok {
		logger.LogSecurityEvent(ctx, uc.logger, "password_change_rejected", "MEDIUM", map[string]interface{}{"user_id": userID})
		return apperror.ErrValidation("current_password", "current password is incorrect")
	}

	hash, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		return apperror.ErrInternalServerError("password hashing failed", err)
	}

	user.Password = hash
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return apperror.ErrDatabaseError("update password", err)
	}

	logger.LogSecurityEvent(ctx, uc.logger, "password_changed", "LOW", map[string]interface{}{"user_id": userID})
	return nil
}

func (uc *AuthUseCase) findUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.ErrUserNotFound(userID)
		}
		return nil, apperror.ErrDatabaseError("find user", err)
	}
	return user, nil
}
