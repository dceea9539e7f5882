//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/pkg/jwt"
	"leisure-booking/internal/pkg/password"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/tests/common/fakes"
)

type AuthSuite struct {
	suite.Suite
	ctx  context.Context
	uow  *fakes.UnitOfWork
	jwts *jwt.Service
	auth commands.AuthCommands
}

func (s *AuthSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = fakes.NewUnitOfWork()
	s.jwts = jwt.NewService("test-secret", time.Hour)
	s.auth = commands.NewAuthCommands(s.uow, s.jwts)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) seedUser(email, plain string) *user.User {
	hash, err := password.HashPassword(plain)
	s.Require().NoError(err)
	u := user.NewUser(email, hash, user.RoleCustomer)
	s.Require().NoError(s.uow.UserRepo.Create(s.ctx, u))
	return u
}

func (s *AuthSuite) TestLoginIssuesValidToken() {
	u := s.seedUser("member@example.com", "correct horse")

	result, err := s.auth.Login(s.ctx, "member@example.com", "correct horse")
	s.Require().NoError(err)
	s.Equal(u.ID(), result.UserID)
	s.Equal(user.RoleCustomer, result.Role)

	claims, err := s.jwts.ValidateToken(result.AccessToken)
	s.Require().NoError(err)
	s.Equal(u.ID(), claims.UserID)
	s.Equal("customer", claims.Role)
}

func (s *AuthSuite) TestLoginWrongPassword() {
	s.seedUser("member@example.com", "correct horse")

	_, err := s.auth.Login(s.ctx, "member@example.com", "battery staple")
	s.Require().ErrorIs(err, errs.ErrInvalidCredentials)
}

func (s *AuthSuite) TestLoginUnknownEmailLooksLikeWrongPassword() {
	_, err := s.auth.Login(s.ctx, "nobody@example.com", "anything")
	s.Require().ErrorIs(err, errs.ErrInvalidCredentials)
}

func (s *AuthSuite) TestRegisterCreatesCustomer() {
	result, err := s.auth.Register(s.ctx, "new@example.com", "correct horse")
	s.Require().NoError(err)
	s.Equal(user.RoleCustomer, result.Role)

	stored, err := s.uow.UserRepo.FindByEmail(s.ctx, "new@example.com")
	s.Require().NoError(err)
	s.NoError(password.ComparePassword(stored.PasswordHash(), "correct horse"))
}

func (s *AuthSuite) TestRegisterDuplicateEmail() {
	s.seedUser("taken@example.com", "pw")

	_, err := s.auth.Register(s.ctx, "taken@example.com", "pw")
	s.Require().ErrorIs(err, commands.ErrEmailTaken)
}
