package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid session accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks the required role or permission.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrTestimonialNotFound is returned when a testimonial id does not resolve.
	ErrTestimonialNotFound = errors.New("testimonial not found")
	// ErrDuplicateTestimonial is returned when a user already has a testimonial.
	ErrDuplicateTestimonial = errors.New("you have already submitted a testimonial")
	// ErrAlreadyApproved is returned when approving an approved testimonial.
	ErrAlreadyApproved = errors.New("testimonial is already approved")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category id does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when a category slug is taken.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrCarouselImageNotFound is returned when a carousel image id does not resolve.
	ErrCarouselImageNotFound = errors.New("carousel image not found")
	// ErrInvalidAmount is returned when a donation amount is not positive.
	ErrInvalidAmount = errors.New("invalid donation amount")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflict-style failures
// (duplicate submission, already approved) surface as 400 to match the
// public API contract.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrTestimonialNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TESTIMONIAL_NOT_FOUND")
	case errors.Is(err, ErrDuplicateTestimonial):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_TESTIMONIAL")
	case errors.Is(err, ErrAlreadyApproved):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_APPROVED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrDuplicateCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_CATEGORY")
	case errors.Is(err, ErrCarouselImageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAROUSEL_IMAGE_NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
