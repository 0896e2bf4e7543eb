package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument      = 1000
	ErrCodeInvalidJSON          = 1001
	ErrCodeRequestTooLarge      = 1002
	ErrCodeInvalidQuery         = 1003
	ErrCodeInvalidID            = 1004
	ErrCodeMissingRequired      = 1005
	ErrCodeInvalidStatus        = 1006
	ErrCodeInvalidUpload        = 1007
	ErrCodeUnsupportedMediaType = 1008

	// Domain state (2xxx)
	ErrCodeProductNotFound  = 2001
	ErrCodeBlogNotFound     = 2002
	ErrCodeCategoryNotFound = 2003
	ErrCodeCategoryExists   = 2101
	ErrCodeConflict         = 2102
	ErrCodeRevisionMismatch = 2103
	ErrCodeConfirmRequired  = 2104

	// Auth & limits (3xxx)
	ErrCodeUnauthorized      = 3001
	ErrCodeForbidden         = 3002
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
	ErrCodeBlobFailure  = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeProductNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
