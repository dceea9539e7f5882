package commands

import (
	"context"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/pkg/jwt"
	"leisure-booking/internal/pkg/password"
	"leisure-booking/internal/usecase/shared"
)

var (
	ErrEmailTaken      = errs.New("email already registered")
	ErrTokenGeneration = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	// Register creates a customer account. Staff and admin accounts are
	// provisioned out of band.
	Register(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommands struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommands{uow: uow, jwtService: jwtService}
}

func (a *authCommands) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.uow.Repos().Users().FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password, so the endpoint
		// cannot be used to enumerate accounts.
		return nil, errs.ErrInvalidCredentials
	}

	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	return a.issueToken(u)
}

func (a *authCommands) Register(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(email, hash, user.RoleCustomer)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return a.issueToken(u)
}

func (a *authCommands) issueToken(u *user.User) (*LoginResult, error) {
	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &LoginResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		AccessToken: token,
	}, nil
}
