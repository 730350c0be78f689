package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "account not found",
			expected: "NOT_FOUND: account not found",
		},
		{
			name:     "insufficient resources",
			code:     errors.CodeInsufficientResources,
			message:  "not enough gold",
			expected: "INSUFFICIENT_RESOURCES: not enough gold",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithReason() {
	err := errors.FailedPrecondition("bid too low").
		WithReason(errors.ReasonBidTooLow).
		WithMeta("highest_bid", int64(500))

	s.Equal(errors.ReasonBidTooLow, errors.GetReason(err))
	s.Equal(int64(500), err.Meta["highest_bid"])
	s.Equal(errors.ReasonBidTooLow, errors.GetReason(errors.Wrap(err, "place bid")))
	s.Equal("", errors.GetReason(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection failed")
	wrapped := errors.Wrap(baseErr, "failed to load account")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load account", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "guild not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal(baseErr, wrapped.Unwrap())
	s.True(errors.Is(wrapped, errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.InvalidArgument("bad").WithMeta("field", "amount")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeAborted, "retry exhausted")

	s.Equal(errors.CodeAborted, wrapped.Code)
	s.Equal("amount", wrapped.Meta["field"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	s.True(errors.IsNotFound(errors.NotFound("x")))
	s.True(errors.IsPermissionDenied(errors.PermissionDenied("x")))
	s.True(errors.IsFailedPrecondition(errors.FailedPrecondition("x")))
	s.True(errors.IsInsufficientResources(errors.InsufficientResources("x")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgument("x")))
	s.True(errors.IsAborted(errors.Aborted("x")))
	s.False(errors.IsNotFound(errors.Internal("x")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeNotFound, 404},
		{errors.CodePermissionDenied, 403},
		{errors.CodeFailedPrecondition, 409},
		{errors.CodeInsufficientResources, 402},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeInternal, 500},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.InsufficientResources("not enough gold").
		WithReason(errors.ReasonInsufficientFunds).
		WithMeta("required", int64(100))

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Equal("not enough gold", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeInsufficientResources, errors.GetCode(back))
	s.Equal(errors.ReasonInsufficientFunds, errors.GetReason(back))
	s.Equal(float64(100), errors.GetMeta(back)["required"])
}

func (s *ErrorsTestSuite) TestFromPlainGRPCStatus() {
	err := errors.FromGRPCError(status.Error(codes.NotFound, "missing"))
	s.Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Equal("missing", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actor_id", " ", vb)
	errors.ValidatePositive("amount", 0, vb)
	errors.ValidateRange("roster", 7, 1, 5, vb)
	errors.ValidateEnum("action", "punch", []string{"attack", "defend"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "action: must be one of: attack, defend")
	s.Contains(err.Error(), "actor_id: is required")
	s.Contains(err.Error(), "amount: must be positive")
	s.Contains(err.Error(), "roster: must be between 1 and 5")

	s.NoError(errors.NewValidationBuilder().Build())
}
