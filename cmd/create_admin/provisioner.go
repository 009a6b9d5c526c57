package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	"github.com/stockroom/backoffice/domain/valueobject"
)

var errInvalidRole = errors.New("role must be admin, manager or editor")

// provisioner creates a back-office user, or resets the name, password and
// role of the user that already owns the email.
type provisioner struct {
	users     outbound.UserRepository
	passwords outbound.PasswordService
	now       func() time.Time
}

func (p *provisioner) Provision(ctx context.Context, name, email, password, role string) (*entity.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, false, errors.New("name is required")
	}
	if err := valueobject.ValidateEmail(email); err != nil {
		return nil, false, err
	}
	if err := valueobject.ValidateNewPassword(password, password); err != nil {
		return nil, false, err
	}
	if !entity.IsValidRole(role) {
		return nil, false, errInvalidRole
	}

	hash, err := p.passwords.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := p.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = name
		existing.Password = hash
		existing.Role = role
		existing.UpdatedAt = p.clock()
		if err := p.users.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update user: %w", err)
		}
		return existing, false, nil
	case errors.Is(err, outbound.ErrNotFound):
		user := entity.NewUser(name, email, hash, role)
		if err := p.users.Create(ctx, user); err != nil {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}
		return user, true, nil
	default:
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}
}

func (p *provisioner) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}
