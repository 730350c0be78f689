package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                    Code = "OK"
	CodeCanceled              Code = "CANCELED"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded      Code = "DEADLINE_EXCEEDED"
	CodeNotFound              Code = "NOT_FOUND"
	CodeAlreadyExists         Code = "ALREADY_EXISTS"
	CodePermissionDenied      Code = "PERMISSION_DENIED"
	CodeFailedPrecondition    Code = "FAILED_PRECONDITION"
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	CodeAborted               Code = "ABORTED"
	CodeUnimplemented         Code = "UNIMPLEMENTED"
	CodeInternal              Code = "INTERNAL"
	CodeUnavailable           Code = "UNAVAILABLE"
)

// Reasons carried in Meta["reason"] to refine a code without growing the taxonomy
const (
	ReasonRankTooLow        = "rank_too_low"
	ReasonBidTooLow         = "bid_too_low"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonExpTooLow         = "exp_too_low"
	ReasonAtCeiling         = "at_ceiling"
	ReasonTooWeak           = "too_weak"
	ReasonGuildFull         = "guild_full"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeCanceled:
		return http.StatusRequestTimeout
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeFailedPrecondition:
		return http.StatusConflict
	case CodeInsufficientResources:
		return http.StatusPaymentRequired
	case CodeAborted:
		return http.StatusConflict
	case CodeUnimplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
