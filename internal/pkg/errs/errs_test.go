//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/pkg/errs"
)

type kindError struct {
	kind string
}

func (e kindError) Error() string { return e.kind }

type ErrsSuite struct {
	suite.Suite
}

func TestErrsSuite(t *testing.T) {
	suite.Run(t, new(ErrsSuite))
}

func (s *ErrsSuite) TestMarkMatchesSentinelWithStdlibIs() {
	cause := errs.New("row missing")
	err := errs.Mark(cause, errs.ErrUserNotFound)

	s.ErrorIs(err, errs.ErrUserNotFound)
	s.ErrorIs(err, cause)
	s.True(errs.Is(err, errs.ErrUserNotFound))
}

func (s *ErrsSuite) TestMarkKeepsCauseMessage() {
	err := errs.Mark(errs.New("row missing"), errs.ErrUserNotFound)

	s.Equal("row missing", err.Error())
}

func (s *ErrsSuite) TestMarkSurvivesFurtherWrapping() {
	err := errs.Wrap(errs.Mark(errs.New("row missing"), errs.ErrBookingNotFound), "load booking")

	s.ErrorIs(err, errs.ErrBookingNotFound)
}

func (s *ErrsSuite) TestMarkKeepsTypedCauseForAs() {
	err := errs.Mark(kindError{kind: "NOT_FOUND"}, errs.ErrUserNotFound)

	var ke kindError
	s.Require().True(errors.As(err, &ke))
	s.Equal("NOT_FOUND", ke.kind)
}

func (s *ErrsSuite) TestMarkOfNilIsTheSentinel() {
	err := errs.Mark(nil, errs.ErrEmptyBasket)

	s.ErrorIs(err, errs.ErrEmptyBasket)
	s.Equal(errs.ErrEmptyBasket, err)
}
