package model

// Boundary error codes. Business-rule failures use the identifiers defined by
// the valuation package instead.
const (
	CodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeRateLimited          = "RATE_LIMIT_EXCEEDED"
	CodeNonFiniteResult      = "NON_FINITE_RESULT"
	CodeInternal             = "INTERNAL_ERROR"
)
